package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/keshon/abyss/internal/catalog/spotify"
	"github.com/keshon/abyss/internal/command"
	"github.com/keshon/abyss/internal/commands"
	"github.com/keshon/abyss/internal/config"
	"github.com/keshon/abyss/internal/discord"
	"github.com/keshon/abyss/internal/logging"
	"github.com/keshon/abyss/internal/storage"
	v "github.com/keshon/abyss/internal/version"
	"github.com/keshon/abyss/pkg/cmd"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.Fallback().Error("failed to load config", zap.Error(err))
		return err
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		logging.Fallback().Error("failed to build logger", zap.Error(err))
		return err
	}
	defer log.Sync()

	log.Info("starting bot", zap.String("app", v.AppName), zap.String("version", v.Version))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", zap.Error(err))
		return err
	}
	command.EmbedColor = cfg.EmbedColor

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Error("failed to open storage", zap.Error(err))
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to save storage", zap.Error(err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, log)

	reg := cmd.NewRegistry()
	bot, err := discord.New(cfg, reg, log, store)
	if err != nil {
		log.Error("failed to create bot", zap.Error(err))
		return err
	}

	deps := commands.Deps{
		Log:     log,
		Prefix:  cfg.CommandPrefix,
		OwnerID: cfg.OwnerID,
		Store:   store,
		Stats:   bot.Stats(),
		AppID:   bot.AppID,
		Latency: bot.Latency,
	}
	if cfg.SpotifyEnabled() {
		deps.Catalog = spotify.New(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
	commands.Register(reg, deps)

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("discord bot error", zap.Error(err))
		return err
	}
	log.Info("discord bot exited cleanly")
	return nil
}
