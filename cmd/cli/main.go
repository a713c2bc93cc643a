package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nyaosorg/go-readline-ny"
	"github.com/nyaosorg/go-readline-ny/simplehistory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/commands"
	"github.com/keshon/abyss/internal/config"
	"github.com/keshon/abyss/internal/logging"
	"github.com/keshon/abyss/internal/storage"
	v "github.com/keshon/abyss/internal/version"
	"github.com/keshon/abyss/pkg/cmd"
)

var (
	envFile   string
	userID    string
	noHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "abyss-cli",
	Short: "Run bot commands from a terminal",
	Long: `abyss-cli runs the bot's commands locally, without a Discord connection.

Arguments use the same syntax as chat messages:
  abyss-cli run track --query "reckoner radiohead"
  abyss-cli run help --command=album

Flags for abyss-cli itself go before the command name.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run <command> [arguments...]",
	Short: "Run a single command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return withSession(c.Context(), c.OutOrStdout(), func(s *session) error {
			return s.exec(args[0], joinArgs(args[1:]))
		})
	},
}

// joinArgs rebuilds a raw argument string from shell words, quoting the
// values the shell unquoted.
func joinArgs(args []string) string {
	out := make([]string, len(args))
	for i, a := range args {
		if !strings.Contains(a, " ") {
			out[i] = a
			continue
		}
		if name, value, ok := strings.Cut(a, "="); ok && strings.HasPrefix(name, "-") && !strings.Contains(name, " ") {
			out[i] = name + `="` + value + `"`
			continue
		}
		out[i] = `"` + a + `"`
	}
	return strings.Join(out, " ")
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read commands from standard input, one per line",
	Long: `repl reads one command per line. On a terminal it offers line editing
and history; piped input is read line by line until EOF.`,
	RunE: func(c *cobra.Command, _ []string) error {
		return withSession(c.Context(), c.OutOrStdout(), func(s *session) error {
			return s.repl(c.InOrStdin())
		})
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List available commands with their usage",
	RunE: func(c *cobra.Command, _ []string) error {
		return withSession(c.Context(), c.OutOrStdout(), func(s *session) error {
			for _, cc := range s.reg.GetAll() {
				fmt.Fprintf(s.out, "%-40s %s\n", command.Usage("", cc), cc.Description())
			}
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to load")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user ID to run as (defaults to OWNER_ID)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record commands in storage")
	// everything after the command name belongs to the bot command
	runCmd.Flags().SetInterspersed(false)
	rootCmd.Version = v.Version
	rootCmd.AddCommand(runCmd, replCmd, commandsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type session struct {
	ctx  context.Context
	reg  *cmd.Registry
	cctx *command.Context
	out  io.Writer
	log  *zap.Logger
}

func withSession(ctx context.Context, out io.Writer, fn func(*session) error) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer log.Sync()
	command.EmbedColor = cfg.EmbedColor

	deps := commands.Deps{Log: log, OwnerID: cfg.OwnerID}
	if !noHistory {
		store, err := storage.New(cfg.StoragePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("failed to save storage", zap.Error(err))
			}
		}()
		deps.Store = store
	}
	if cfg.SpotifyEnabled() {
		deps.Catalog = spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}

	reg := cmd.NewRegistry()
	commands.Register(reg, deps)

	uid := userID
	if uid == "" {
		uid = cfg.OwnerID
	}
	s := &session{
		ctx: logging.WithLogger(ctx, log),
		reg: reg,
		cctx: &command.Context{
			Responder: &textResponder{w: out},
			UserID:    uid,
			Username:  "cli",
		},
		out: out,
		log: log,
	}
	return fn(s)
}

func (s *session) exec(name, raw string) error {
	err := command.Dispatch(s.ctx, s.reg, s.cctx, name, raw)
	if errors.Is(err, command.ErrUnknownCommand) {
		fmt.Fprintf(s.out, "Unknown command %q. Try `commands`.\n", name)
		return nil
	}
	return err
}

const prompt = "abyss> "

func (s *session) repl(in io.Reader) error {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return s.interactive(simplehistory.New())
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		s.line(sc.Text())
	}
	return sc.Err()
}

func (s *session) interactive(history *simplehistory.Container) error {
	ed := &readline.Editor{
		PromptWriter: func(w io.Writer) (int, error) {
			return io.WriteString(w, prompt)
		},
		History:        history,
		HistoryCycling: true,
	}
	for {
		text, err := ed.ReadLine(s.ctx)
		switch {
		case errors.Is(err, readline.CtrlC):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		if s.line(text) {
			history.Add(text)
		}
	}
}

// line runs one input line and reports whether it held a command.
func (s *session) line(text string) bool {
	name, raw, ok := cmd.SplitLine(text, "")
	if !ok {
		return false
	}
	if err := s.exec(name, raw); err != nil {
		s.log.Error("command failed", zap.String("command", name), zap.Error(err))
	}
	return true
}
