package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/version"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

type HelpCommand struct {
	Registry *cmd.Registry
	Prefix   string
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }

func (c *HelpCommand) Parameters() []unixargs.Parameter {
	return []unixargs.Parameter{
		{Name: "command", Optional: true, Description: "Show usage for one command"},
	}
}

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cctx, ok := command.FromInvocation(inv)
	if !ok {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: version.AppName + " Help",
		Color: command.EmbedColor,
	}

	if name := inv.String("command"); name != "" {
		target := c.Registry.Get(name)
		if target == nil {
			return cctx.Reply(ctx, command.Reply{Content: fmt.Sprintf("No command named `%s`.", name)})
		}
		embed.Description = describeCommand(c.Prefix, target)
	} else {
		embed.Description = c.byCategory()
	}

	return cctx.Reply(ctx, command.Reply{Embed: embed})
}

func (c *HelpCommand) byCategory() string {
	cats, grouped := command.Group(c.Registry.GetAll())

	var sb strings.Builder
	for _, cat := range cats {
		title := cat
		if title == "" {
			title = "Other"
		}
		fmt.Fprintf(&sb, "**%s**\n", title)
		for _, cc := range grouped[cat] {
			fmt.Fprintf(&sb, "`%s%s` - %s\n", c.Prefix, cc.Name(), cc.Description())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Use `%shelp --command <name>` for details.", c.Prefix)
	return sb.String()
}

func describeCommand(prefix string, c cmd.Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "`%s`\n%s\n", command.Usage(prefix, c), c.Description())

	if aliases := cmd.Aliases(c); len(aliases) > 0 {
		fmt.Fprintf(&sb, "Aliases: %s\n", strings.Join(aliases, ", "))
	}
	for _, p := range cmd.Parameters(c) {
		line := fmt.Sprintf("`--%s`", p.Name)
		if p.Description != "" {
			line += " " + p.Description
		}
		if p.Default != nil {
			line += fmt.Sprintf(" (default: %v)", p.Default)
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
