package core

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/pkg/cmd"
)

type PingCommand struct {
	// Latency reports the gateway heartbeat latency; nil outside Discord.
	Latency func() time.Duration
}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }
func (c *PingCommand) Category() string    { return "🛠️ Maintenance" }

func (c *PingCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cctx, ok := command.FromInvocation(inv)
	if !ok {
		return nil
	}

	desc := "Latency: n/a"
	if c.Latency != nil {
		desc = fmt.Sprintf("Latency: %dms", c.Latency().Milliseconds())
	}
	return cctx.Reply(ctx, command.Reply{Embed: &discordgo.MessageEmbed{
		Title:       "Pong!",
		Description: desc,
		Color:       command.EmbedColor,
	}})
}
