package unixargs

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

// Parse scans raw once, left to right, and binds every declared parameter.
//
// Error offsets count characters, not bytes. Bytes that are not valid UTF-8
// are each counted as one character and copied into values unchanged.
//
// Malformed input is reported as one of the ParseError kinds. A parameter set
// with duplicate names yields an error wrapping ErrDuplicateParameter before
// any scanning takes place.
func Parse(raw string, params []Parameter) (Bindings, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}

	var (
		st          = stateNeutral
		quoted      bool
		name, value strings.Builder
		bound       = make(Bindings, len(params))
	)

	// the trailing space flushes a token still open at end of input
	padded := raw + " "

	for i, pos := 0, 0; i < len(padded); pos++ {
		r, size := utf8.DecodeRuneInString(padded[i:])
		char := padded[i : i+size]
		i += size

		s := transition(st, classify(r), quoted)
		st = s.next

		switch s.act {
		case actAppendName:
			name.WriteString(char)
		case actAppendValue:
			value.WriteString(char)
		case actAppendSpace:
			value.WriteByte(' ')
		case actOpenQuote:
			quoted = true
		case actEndName:
			if p, ok := lookup(params, name.String()); ok && p.Kind == KindBoolean {
				bound.bind(p, true)
				name.Reset()
				value.Reset()
				st = stateNeutral
			}
		case actFlush, actCloseQuote:
			quoted = false
			p, ok := lookup(params, name.String())
			if !ok {
				return nil, &UnknownParameterError{Name: name.String(), Position: pos, Bound: bound}
			}
			bound.bind(p, value.String())
			name.Reset()
			value.Reset()
		case actUnexpectedQuote:
			return nil, &UnexpectedQuoteError{Position: pos, Bound: bound}
		}
	}

	if quoted {
		return nil, &UnclosedQuoteError{Position: utf8.RuneCountInString(raw) + 1, Bound: bound}
	}

	if err := fill(bound, params); err != nil {
		return nil, err
	}
	return bound, nil
}

// Fill completes values that arrived already split (for example from a slash
// interaction) with the same rules Parse applies after its scan: unbound
// booleans without a default become false, optional parameters take their
// default, and the first unmet required parameter is reported. Keys that name
// no declared parameter are dropped. When several keys differ only in case,
// the lexically smallest one is used.
func Fill(given map[string]any, params []Parameter) (Bindings, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}
	bound := make(Bindings, len(params))
	for _, k := range slices.Sorted(maps.Keys(given)) {
		if p, ok := lookup(params, k); ok {
			bound.bind(p, given[k])
		}
	}
	if err := fill(bound, params); err != nil {
		return nil, err
	}
	return bound, nil
}

func fill(bound Bindings, params []Parameter) error {
	for _, p := range params {
		if _, ok := bound[p.Key()]; ok {
			continue
		}
		switch {
		case p.Kind == KindBoolean && p.Default == nil:
			bound[p.Key()] = false
		case p.Optional:
			bound[p.Key()] = p.Default
		default:
			return &TooFewArgumentsError{Parameter: p, Bound: bound.clone()}
		}
	}
	return nil
}
