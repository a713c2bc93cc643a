// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, declared parameters and Run(ctx, invocation). How it
// is registered and dispatched (Discord message, slash interaction, CLI) is
// defined by adapters that wrap this.
package cmd

import (
	"context"

	"github.com/keshon/abyss/pkg/unixargs"
)

// Invocation carries what any command runner passes: the raw argument text,
// the values bound to the command's parameters and an opaque payload. Adapters
// set Data to their context.
type Invocation struct {
	Raw  string
	Args unixargs.Bindings
	Data any
}

// Command is the universal contract: identity plus execution.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// ParameterProvider is implemented by commands that accept named arguments.
type ParameterProvider interface {
	Parameters() []unixargs.Parameter
}

// AliasProvider is implemented by commands reachable under more than one name.
type AliasProvider interface {
	Aliases() []string
}

// Parameters returns the parameters declared by c or by the command it wraps.
func Parameters(c Command) []unixargs.Parameter {
	if p, ok := Root(c).(ParameterProvider); ok {
		return p.Parameters()
	}
	return nil
}

// Aliases returns the aliases declared by c or by the command it wraps.
func Aliases(c Command) []string {
	if a, ok := Root(c).(AliasProvider); ok {
		return a.Aliases()
	}
	return nil
}
