package command

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/logging"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

const internalErrorMessage = "There was an internal error running that command. Try again later."

// ErrUnknownCommand is returned by Dispatch for names nothing is registered under.
var ErrUnknownCommand = errors.New("unknown command")

// Dispatch looks up name, binds raw against the command's parameters and runs
// it. Malformed arguments are answered with a one-line message and are not
// returned as errors.
func Dispatch(ctx context.Context, reg *cmd.Registry, cctx *Context, name, raw string) error {
	c := reg.Get(name)
	if c == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	args, err := cmd.Bind(c, raw)
	if err != nil {
		var perr unixargs.ParseError
		if !errors.As(err, &perr) {
			_ = cctx.Reply(ctx, Reply{Content: internalErrorMessage})
			return fmt.Errorf("bind %s: %w", c.Name(), err)
		}
		logging.FromContext(ctx).Debug("rejected arguments",
			zap.String("command", c.Name()),
			zap.String("raw", raw),
			zap.Error(err),
		)
		return cctx.Reply(ctx, Reply{Content: Describe(err)})
	}

	return Run(ctx, c, cctx, raw, args)
}

// Run invokes c with already bound arguments. Conversion failures reported as
// *cmd.ArgumentError are answered with their message; other errors get a
// generic reply and are returned for logging.
func Run(ctx context.Context, c cmd.Command, cctx *Context, raw string, args unixargs.Bindings) error {
	err := c.Run(ctx, &cmd.Invocation{Raw: raw, Args: args, Data: cctx})
	if err == nil {
		return nil
	}

	var argErr *cmd.ArgumentError
	if errors.As(err, &argErr) {
		return cctx.Reply(ctx, Reply{Content: Describe(err)})
	}

	if rerr := cctx.Reply(ctx, Reply{Content: internalErrorMessage}); rerr != nil {
		logging.FromContext(ctx).Warn("failed to report command error", zap.Error(rerr))
	}
	return fmt.Errorf("run %s: %w", c.Name(), err)
}
