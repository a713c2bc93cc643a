package core

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/version"
	"github.com/keshon/abyss/pkg/cmd"
)

type AboutCommand struct {
	Prefix string
}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover the origin of this bot" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }

func (c *AboutCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cctx, ok := command.FromInvocation(inv)
	if !ok {
		return nil
	}

	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		} else {
			buildDate = "invalid date"
		}
	}
	goVer := strings.TrimPrefix(version.GoVersion, "go")
	if goVer == "" {
		goVer = "unknown"
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName,
		Description: "Arguments are written Unix style: `--name value`, `--name=\"quoted value\"` or a bare `--flag`.",
		Color:       command.EmbedColor,
	}
	command.AddField(embed, "Version", version.Version, true)
	command.AddField(embed, "Build date", buildDate, true)
	command.AddField(embed, "Go", goVer, true)
	command.AddField(embed, "Help", "`"+c.Prefix+"help`", false)

	return cctx.Reply(ctx, command.Reply{Embed: embed})
}
