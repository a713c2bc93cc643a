package middleware

import (
	"context"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/pkg/cmd"
)

// OwnerOnlyMessage is sent to anyone but the owner.
const OwnerOnlyMessage = "This command is restricted to the bot owner."

// WithOwnerOnly lets only ownerID run the command. With an empty ownerID
// nobody can.
func WithOwnerOnly(ownerID string) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			cctx, ok := command.FromInvocation(inv)
			if !ok {
				return nil
			}
			if ownerID == "" || cctx.UserID != ownerID {
				return cctx.Reply(ctx, command.Reply{Content: OwnerOnlyMessage})
			}
			return c.Run(ctx, inv)
		})
	}
}
