package unixargs

import "fmt"

// ParseError is implemented by every failure kind Parse reports for malformed
// input. Partial holds whatever was bound before the failure.
type ParseError interface {
	error
	Partial() Bindings
}

// UnknownParameterError reports a flushed name that matches no declared parameter.
type UnknownParameterError struct {
	Name     string
	Position int
	Bound    Bindings
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q at offset %d", e.Name, e.Position)
}

func (e *UnknownParameterError) Offset() int       { return e.Position }
func (e *UnknownParameterError) Partial() Bindings { return e.Bound }

// UnexpectedQuoteError reports a quote outside a value.
type UnexpectedQuoteError struct {
	Position int
	Bound    Bindings
}

func (e *UnexpectedQuoteError) Error() string {
	return fmt.Sprintf("unexpected quote at offset %d", e.Position)
}

func (e *UnexpectedQuoteError) Offset() int       { return e.Position }
func (e *UnexpectedQuoteError) Partial() Bindings { return e.Bound }

// UnclosedQuoteError reports input that ended inside a quoted value.
type UnclosedQuoteError struct {
	Position int
	Bound    Bindings
}

func (e *UnclosedQuoteError) Error() string {
	return fmt.Sprintf("unclosed quote at offset %d", e.Position)
}

func (e *UnclosedQuoteError) Offset() int       { return e.Position }
func (e *UnclosedQuoteError) Partial() Bindings { return e.Bound }

// TooFewArgumentsError names the first required parameter left unbound.
type TooFewArgumentsError struct {
	Parameter Parameter
	Bound     Bindings
}

func (e *TooFewArgumentsError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Parameter.Name)
}

func (e *TooFewArgumentsError) Partial() Bindings { return e.Bound }
