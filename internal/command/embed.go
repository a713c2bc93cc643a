package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

// EmbedColor is applied to embeds built by commands.
var EmbedColor = 0x7289DA

// AddField appends a field to e and returns it.
func AddField(e *discordgo.MessageEmbed, name, value string, inline bool) *discordgo.MessageEmbed {
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline})
	return e
}

// MarkdownLink renders a masked link, or the bare text when url is empty.
func MarkdownLink(text, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("[%s](%s)", text, url)
}

// HumanizeList joins items as "a", "a and b" or "a, b and c".
func HumanizeList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// Usage renders how c is invoked with prefix, e.g. "a!track [--query <value>]".
func Usage(prefix string, c cmd.Command) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(c.Name())
	for _, p := range cmd.Parameters(c) {
		sb.WriteByte(' ')
		flag := "--" + p.Name
		if p.Kind != unixargs.KindBoolean {
			flag += " <value>"
		}
		if p.Optional || p.Kind == unixargs.KindBoolean {
			flag = "[" + flag + "]"
		}
		sb.WriteString(flag)
	}
	return sb.String()
}

// RenderText flattens a reply for plain-text transports.
func RenderText(r Reply) string {
	var parts []string
	if r.Content != "" {
		parts = append(parts, r.Content)
	}
	if e := r.Embed; e != nil {
		if e.Author != nil && e.Author.Name != "" {
			parts = append(parts, e.Author.Name)
		}
		if e.Title != "" {
			parts = append(parts, "# "+e.Title)
		}
		if e.Description != "" {
			parts = append(parts, e.Description)
		}
		for _, f := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Name, f.Value))
		}
		if e.Footer != nil && e.Footer.Text != "" {
			parts = append(parts, e.Footer.Text)
		}
	}
	return strings.Join(parts, "\n")
}
