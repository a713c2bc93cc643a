// Package commands assembles the bot's command set.
package commands

import (
	"time"

	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/commands/core"
	"github.com/keshon/abyss/internal/commands/spotify"
	"github.com/keshon/abyss/internal/middleware"
	"github.com/keshon/abyss/pkg/cmd"
)

// Deps are the services commands are built from. Nil members disable the
// commands or actions that need them.
type Deps struct {
	Log     *zap.Logger
	Prefix  string
	OwnerID string
	Store   interface {
		middleware.HistoryStore
		core.HistorySource
	}
	Catalog spotify.Catalog
	Stats   core.InteractionStats
	AppID   func() string
	Latency func() time.Duration
}

// Register builds every command into reg. Commands that cannot be registered
// are logged and skipped.
func Register(reg *cmd.Registry, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	var store middleware.HistoryStore
	var history core.HistorySource
	if d.Store != nil {
		store, history = d.Store, d.Store
	}
	logged := middleware.WithCommandLogger(log, store)

	all := []cmd.Command{
		cmd.Apply(&core.HelpCommand{Registry: reg, Prefix: d.Prefix}, logged),
		cmd.Apply(&core.AboutCommand{Prefix: d.Prefix}, logged),
		cmd.Apply(&core.PingCommand{Latency: d.Latency}, logged),
		cmd.Apply(&core.AdminCommand{
			Stats:    d.Stats,
			History:  history,
			AppID:    d.AppID,
			Registry: reg,
		}, middleware.WithOwnerOnly(d.OwnerID), logged),
	}
	if d.Catalog != nil {
		all = append(all,
			cmd.Apply(&spotify.TrackCommand{Catalog: d.Catalog}, logged),
			cmd.Apply(&spotify.AlbumCommand{Catalog: d.Catalog}, logged),
		)
	} else {
		log.Info("spotify credentials not set, music commands disabled")
	}

	for _, c := range all {
		if err := reg.Register(c); err != nil {
			log.Error("failed to register command", zap.String("command", c.Name()), zap.Error(err))
		}
	}
}
