package commands

import (
	"fmt"
	"strings"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/pkg/cmd"
)

// Markdown renders the command reference grouped by category.
func Markdown(reg *cmd.Registry, prefix string) string {
	cats, grouped := command.Group(reg.GetAll())

	var buf strings.Builder
	for _, cat := range cats {
		title := cat
		if title == "" {
			title = "Other"
		}
		fmt.Fprintf(&buf, "### %s\n\n", title)
		for _, c := range grouped[cat] {
			fmt.Fprintf(&buf, "* **`%s`**\n  %s\n", command.Usage(prefix, c), c.Description())
			if aliases := cmd.Aliases(c); len(aliases) > 0 {
				fmt.Fprintf(&buf, "  Aliases: `%s`\n", strings.Join(aliases, "`, `"))
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
