// Package discord connects the command registry to a Discord gateway session:
// prefixed chat messages and slash interactions both end in command.Run.
package discord

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/config"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/retrylimit"
)

// HashStore persists slash command definition hashes per guild.
type HashStore interface {
	CommandHashes(guildID string) (map[string]string, error)
	SetCommandHashes(guildID string, hashes map[string]string) error
}

type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	reg     *cmd.Registry
	log     *zap.Logger
	hashes  HashStore
	limiter *retrylimit.AdaptiveLimiter
	stats   Stats

	mu sync.Mutex // serializes slash command registration
}

// New creates a bot without connecting. hashes may be nil, in which case
// every definition is registered on each start.
func New(cfg *config.Config, reg *cmd.Registry, log *zap.Logger, hashes HashStore) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildPresences

	return &Bot{
		dg:      dg,
		cfg:     cfg,
		reg:     reg,
		log:     log,
		hashes:  hashes,
		limiter: retrylimit.NewAdaptiveLimiter(20, 1, 40, 1, 0.5),
	}, nil
}

// Stats returns the interaction counters.
func (b *Bot) Stats() *Stats { return &b.stats }

// AppID returns the bot user's ID once the session is ready.
func (b *Bot) AppID() string {
	if b.dg.State == nil || b.dg.State.User == nil {
		return ""
	}
	return b.dg.State.User.ID
}

// Latency returns the gateway heartbeat latency.
func (b *Bot) Latency() time.Duration {
	return b.dg.HeartbeatLatency()
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) { b.onReady(ctx, s, r) })
	b.dg.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) { b.onGuildCreate(ctx, s, g) })
	b.dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) { b.onMessageCreate(ctx, s, m) })
	b.dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) { b.onInteractionCreate(ctx, s, i) })

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	b.log.Info("shutdown signal received, closing session")
	return nil
}

func (b *Bot) onReady(ctx context.Context, s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.leaveIfBlacklisted(s, g.ID) {
			continue
		}
		b.syncGuild(ctx, g.ID)
	}
	b.log.Info("discord bot is running", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) onGuildCreate(ctx context.Context, s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.leaveIfBlacklisted(s, g.ID) {
		return
	}
	b.syncGuild(ctx, g.ID)
}

func (b *Bot) syncGuild(ctx context.Context, guildID string) {
	if !b.cfg.InitSlashCommands {
		b.log.Debug("slash command registration skipped", zap.String("guild", guildID))
		return
	}
	go func() {
		if err := b.registerCommands(ctx, guildID); err != nil {
			b.log.Error("failed to register slash commands", zap.String("guild", guildID), zap.Error(err))
		}
	}()
}

func (b *Bot) leaveIfBlacklisted(s *discordgo.Session, guildID string) bool {
	if !b.isGuildBlacklisted(guildID) {
		return false
	}
	b.log.Info("leaving blacklisted guild", zap.String("guild", guildID))
	if err := s.GuildLeave(guildID); err != nil {
		b.log.Error("failed to leave guild", zap.String("guild", guildID), zap.Error(err))
	}
	return true
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}
