package discord

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/retrylimit"
	"github.com/keshon/abyss/pkg/unixargs"
	"github.com/keshon/abyss/pkg/util"
)

const (
	// Discord rejects longer descriptions.
	maxDescription = 100

	registerWorkers = 4
)

// registerCommands syncs the guild's slash commands with the registry:
// obsolete ones are deleted, changed ones are created or overwritten.
func (b *Bot) registerCommands(ctx context.Context, guildID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	appID := b.AppID()
	if appID == "" {
		return errors.New("session not ready")
	}
	log := b.log.With(zap.String("guild", guildID))

	var remote []*discordgo.ApplicationCommand
	err := b.retry(ctx, func() (err error) {
		remote, err = b.dg.ApplicationCommands(appID, guildID)
		return err
	})
	if err != nil {
		return fmt.Errorf("list commands: %w", err)
	}

	defs := commandDefinitions(b.reg)
	wanted := make(map[string]string, len(defs))
	for _, d := range defs {
		wanted[d.Name] = hashCommand(d)
	}

	cached := map[string]string{}
	if b.hashes != nil {
		if cached, err = b.hashes.CommandHashes(guildID); err != nil {
			log.Warn("failed to load command hashes", zap.Error(err))
			cached = map[string]string{}
		}
	}
	registered := make(map[string]bool, len(remote))
	for _, rc := range remote {
		registered[rc.Name] = true
		if _, ok := wanted[rc.Name]; ok {
			continue
		}
		log.Info("deleting obsolete command", zap.String("command", rc.Name))
		if err := b.retry(ctx, func() error { return b.dg.ApplicationCommandDelete(appID, guildID, rc.ID) }); err != nil {
			log.Error("failed to delete command", zap.String("command", rc.Name), zap.Error(err))
		}
	}

	var (
		mu      sync.Mutex
		next    = make(map[string]string, len(defs))
		changed []*discordgo.ApplicationCommand
	)
	for _, d := range defs {
		if registered[d.Name] && cached[d.Name] == wanted[d.Name] {
			next[d.Name] = wanted[d.Name]
			continue
		}
		changed = append(changed, d)
	}

	err = util.Parallel(ctx, changed, registerWorkers, func(ctx context.Context, d *discordgo.ApplicationCommand) error {
		if err := b.retry(ctx, func() error {
			_, err := b.dg.ApplicationCommandCreate(appID, guildID, d)
			return err
		}); err != nil {
			log.Error("failed to register command", zap.String("command", d.Name), zap.Error(err))
			return nil
		}
		log.Debug("registered command", zap.String("command", d.Name))
		mu.Lock()
		next[d.Name] = wanted[d.Name]
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	if b.hashes != nil && !maps.Equal(cached, next) {
		if err := b.hashes.SetCommandHashes(guildID, next); err != nil {
			log.Warn("failed to save command hashes", zap.Error(err))
		}
	}
	return nil
}

func (b *Bot) retry(ctx context.Context, fn func() error) error {
	cfg := retrylimit.DefaultConfig()
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		b.log.Debug("retrying discord request", zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(err))
	}
	return retrylimit.Do(ctx, b.limiter, cfg, func(context.Context) error {
		return restStatus(fn())
	})
}

// restStatus exposes the HTTP status of discordgo REST failures to retrylimit.
func restStatus(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return &statusError{err: err, code: rest.Response.StatusCode}
	}
	return err
}

type statusError struct {
	err  error
	code int
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) StatusCode() int { return e.code }

// commandDefinitions builds slash definitions for every registered command.
func commandDefinitions(reg *cmd.Registry) []*discordgo.ApplicationCommand {
	all := reg.GetAll()
	defs := make([]*discordgo.ApplicationCommand, 0, len(all))
	for _, c := range all {
		defs = append(defs, commandDefinition(c))
	}
	return defs
}

// commandDefinition derives a chat command from c's declared parameters.
// Booleans become boolean options, everything else a string option. Discord
// requires required options first, so they are moved ahead.
func commandDefinition(c cmd.Command) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        strings.ToLower(c.Name()),
		Description: description(c.Description(), c.Name()),
		Type:        discordgo.ChatApplicationCommand,
	}

	var required, optional []*discordgo.ApplicationCommandOption
	for _, p := range cmd.Parameters(c) {
		opt := &discordgo.ApplicationCommandOption{
			Name:        p.Key(),
			Description: description(p.Description, p.Name),
			Type:        discordgo.ApplicationCommandOptionString,
		}
		if p.Kind == unixargs.KindBoolean {
			opt.Type = discordgo.ApplicationCommandOptionBoolean
		} else {
			opt.Required = !p.Optional
		}
		if opt.Required {
			required = append(required, opt)
		} else {
			optional = append(optional, opt)
		}
	}
	def.Options = append(required, optional...)
	return def
}

func description(text, fallback string) string {
	if text == "" {
		text = fallback
	}
	if r := []rune(text); len(r) > maxDescription {
		text = string(r[:maxDescription-3]) + "..."
	}
	return text
}
