// Package config loads bot settings from the environment, reading a .env file
// first when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	CommandPrefix         string   `env:"COMMAND_PREFIX" envDefault:"a!"`
	OwnerID               string   `env:"OWNER_ID"`
	StoragePath           string   `env:"STORAGE_PATH" envDefault:"datastore.json"`
	SpotifyClientID       string   `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret   string   `env:"SPOTIFY_CLIENT_SECRET"`
	LogFile               string   `env:"LOG_FILE"`
	LogLevel              string   `env:"LOG_LEVEL" envDefault:"info"`
	EmbedColor            int      `env:"EMBED_COLOR" envDefault:"7506394"`
}

// ErrMissingToken is returned by Validate when no Discord token is configured.
var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

// Load reads files (default ".env"; missing files are ignored) into the
// process environment and parses Config from it.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// variables already in the environment win over the file
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings needed to connect to Discord.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return ErrMissingToken
	}
	return nil
}

// SpotifyEnabled reports whether catalog credentials are configured.
func (c *Config) SpotifyEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}
