// Package middleware holds cross-cutting wrappers applied to every command.
package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/logging"
	"github.com/keshon/abyss/internal/storage"
	"github.com/keshon/abyss/pkg/cmd"
)

// HistoryStore records dispatched commands.
type HistoryStore interface {
	AppendCommand(guildID string, rec storage.CommandRecord) error
}

// WithCommandLogger logs every run with the invocation's context attached to
// the logger the command sees, and appends it to store when store is non-nil.
func WithCommandLogger(log *zap.Logger, store HistoryStore) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			fields := []zap.Field{
				zap.String("command", c.Name()),
				zap.String("raw", inv.Raw),
			}
			cctx, ok := command.FromInvocation(inv)
			if ok {
				fields = append(fields,
					zap.String("guild", cctx.GuildID),
					zap.String("channel", cctx.ChannelID),
					zap.String("invoker", cctx.UserID),
				)
			}
			l := log.With(fields...)

			start := time.Now()
			err := c.Run(logging.WithLogger(ctx, l), inv)
			elapsed := time.Since(start)

			if err != nil {
				l.Error("command failed", zap.Duration("elapsed", elapsed), zap.Error(err))
			} else {
				l.Info("command executed", zap.Duration("elapsed", elapsed))
			}

			if store != nil && ok {
				rec := storage.CommandRecord{
					ChannelID: cctx.ChannelID,
					UserID:    cctx.UserID,
					Username:  cctx.Username,
					Command:   c.Name(),
					Raw:       inv.Raw,
					Failed:    err != nil,
					Duration:  elapsed,
					Datetime:  start.UTC(),
				}
				if serr := store.AppendCommand(cctx.GuildID, rec); serr != nil {
					l.Warn("failed to record command", zap.Error(serr))
				}
			}
			return err
		})
	}
}
