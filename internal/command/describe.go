package command

import (
	"errors"
	"fmt"

	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

// Describe renders an argument failure as a single line for the invoking user.
func Describe(err error) string {
	var (
		unknown    *unixargs.UnknownParameterError
		unexpected *unixargs.UnexpectedQuoteError
		unclosed   *unixargs.UnclosedQuoteError
		tooFew     *unixargs.TooFewArgumentsError
		argErr     *cmd.ArgumentError
	)

	switch {
	case errors.As(err, &unknown):
		return fmt.Sprintf("Unknown parameter `--%s`.", unknown.Name)
	case errors.As(err, &unexpected):
		return fmt.Sprintf("Unexpected quote at character %d. Quotes may only wrap a value.", unexpected.Offset()+1)
	case errors.As(err, &unclosed):
		return "Unclosed quote. Close the value with `\"`."
	case errors.As(err, &tooFew):
		return fmt.Sprintf("Missing required parameter `--%s`.", tooFew.Parameter.Name)
	case errors.As(err, &argErr):
		return fmt.Sprintf("`--%s`: %s", argErr.Name, argErr.Message)
	default:
		return internalErrorMessage
	}
}
