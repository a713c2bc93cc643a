// Package unixargs binds a raw argument string written in the Unix flag style
// (`--name value`, `--name="quoted value"`, bare `--flag`) to a declared set of
// named parameters. It holds no state between calls and is safe for concurrent use.
package unixargs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the expected kind of a parameter value.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// Parameter describes one named input a command accepts.
type Parameter struct {
	Name        string
	Kind        Kind
	Optional    bool
	Default     any
	Description string
}

// Key returns the canonical lookup key of the parameter.
func (p Parameter) Key() string { return strings.ToLower(p.Name) }

// ErrDuplicateParameter is returned when a parameter set declares the same
// name twice. It is a programming error of the caller, not a parse result.
var ErrDuplicateParameter = errors.New("unixargs: duplicate parameter name")

// Validate checks the parameter set for duplicate names (case-insensitive).
func Validate(params []Parameter) error {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		key := p.Key()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateParameter, p.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// lookup resolves name against params; first match wins, no prefix matching.
func lookup(params []Parameter, name string) (Parameter, bool) {
	for _, p := range params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Parameter{}, false
}
