package core

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/storage"
	"github.com/keshon/abyss/pkg/cmd"
	"github.com/keshon/abyss/pkg/unixargs"
)

// InteractionStats counts interactions received by the Discord adapter.
type InteractionStats interface {
	Successful() int64
	Failed() int64
}

type HistorySource interface {
	CommandHistory(guildID string) ([]storage.CommandRecord, error)
}

type adminAction func(ctx context.Context, cctx *command.Context, inv *cmd.Invocation) (string, error)

// AdminCommand exposes owner-only maintenance actions. Any dependency may be
// nil; the matching action then reports it as unavailable.
type AdminCommand struct {
	Stats    InteractionStats
	History  HistorySource
	AppID    func() string
	Registry *cmd.Registry
}

func (c *AdminCommand) Name() string        { return "admin" }
func (c *AdminCommand) Description() string { return "Provides administrative functions" }
func (c *AdminCommand) Category() string    { return "🛠️ Maintenance" }

func (c *AdminCommand) Parameters() []unixargs.Parameter {
	return []unixargs.Parameter{
		{Name: "action", Optional: true, Description: "Action to run"},
		{Name: "command", Optional: true, Description: "Target of dump_command"},
	}
}

func (c *AdminCommand) actions() map[string]adminAction {
	return map[string]adminAction{
		"debug_interactions": c.debugInteractions,
		"generate_invite":    c.generateInvite,
		"history":            c.history,
		"dump_command":       c.dumpCommand,
	}
}

func (c *AdminCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cctx, ok := command.FromInvocation(inv)
	if !ok {
		return nil
	}

	actions := c.actions()
	names := slices.Sorted(maps.Keys(actions))
	name, err := inv.OneOf("action", names...)
	if err != nil {
		return cctx.Reply(ctx, command.Reply{Content: fmt.Sprintf("Available: `%s`", strings.Join(names, ", "))})
	}

	start := time.Now()
	out, err := actions[name](ctx, cctx, inv)
	if err != nil {
		return fmt.Errorf("admin %s: %w", name, err)
	}
	elapsed := time.Since(start).Milliseconds()

	return cctx.Reply(ctx, command.Reply{Content: fmt.Sprintf("Executed action `%s` in `%d`ms.\n%s", name, elapsed, out)})
}

func (c *AdminCommand) debugInteractions(context.Context, *command.Context, *cmd.Invocation) (string, error) {
	if c.Stats == nil {
		return "Interactions are not enabled.", nil
	}
	return fmt.Sprintf("Successful: %d, failed: %d", c.Stats.Successful(), c.Stats.Failed()), nil
}

func (c *AdminCommand) generateInvite(context.Context, *command.Context, *cmd.Invocation) (string, error) {
	if c.AppID == nil || c.AppID() == "" {
		return "Not connected to Discord.", nil
	}
	return fmt.Sprintf("<https://discord.com/api/oauth2/authorize?client_id=%s&permissions=0&scope=bot%%20applications.commands>", c.AppID()), nil
}

func (c *AdminCommand) history(_ context.Context, cctx *command.Context, _ *cmd.Invocation) (string, error) {
	if c.History == nil {
		return "Storage not connected.", nil
	}
	records, err := c.History.CommandHistory(cctx.GuildID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "No commands recorded.", nil
	}

	var sb strings.Builder
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		status := "ok"
		if r.Failed {
			status = "failed"
		}
		fmt.Fprintf(&sb, "`%s` %s `%s` %s (%s)\n", r.Datetime.Format("2006-01-02 15:04"), r.Username, r.Command, status, r.Duration.Round(time.Millisecond))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *AdminCommand) dumpCommand(_ context.Context, _ *command.Context, inv *cmd.Invocation) (string, error) {
	if c.Registry == nil {
		return "No registry.", nil
	}
	target := c.Registry.Get(inv.String("command"))
	if target == nil {
		return "Unknown command. Pass `--command <name>`.", nil
	}

	data, err := json.MarshalIndent(struct {
		Name        string               `json:"name"`
		Description string               `json:"description"`
		Aliases     []string             `json:"aliases,omitempty"`
		Parameters  []unixargs.Parameter `json:"parameters"`
	}{target.Name(), target.Description(), cmd.Aliases(target), cmd.Parameters(target)}, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("`%s`: ```json\n%s```", target.Name(), data), nil
}
