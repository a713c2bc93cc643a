package unixargs

import "strings"

// Bindings maps a lower-cased parameter name to its bound value. Values
// produced by the scan are either string or bool; defaults are stored as
// declared.
type Bindings map[string]any

// Lookup returns the value bound to name.
func (b Bindings) Lookup(name string) (any, bool) {
	v, ok := b[strings.ToLower(name)]
	return v, ok
}

// String returns the value bound to name if it is a string.
func (b Bindings) String(name string) (string, bool) {
	v, ok := b.Lookup(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the value bound to name if it is a bool.
func (b Bindings) Bool(name string) (bool, bool) {
	v, ok := b.Lookup(name)
	if !ok {
		return false, false
	}
	f, ok := v.(bool)
	return f, ok
}

// bind adds the value unless the parameter is already bound.
func (b Bindings) bind(p Parameter, v any) {
	key := p.Key()
	if _, ok := b[key]; ok {
		return
	}
	b[key] = v
}

func (b Bindings) clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
