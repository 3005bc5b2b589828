package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	port string

	discordAppToken string
	discordClientId string
	discordGuildID  string

	unitsDir     string
	databasePath string

	handlerTimeout           time.Duration
	metricCollectionInterval time.Duration

	reloadToken string
}

func NewConfig() *Config {
	return newConfig(true)
}

// NewOfflineConfig is NewConfig for commands that never talk to Discord:
// the Discord variables are read but not required.
func NewOfflineConfig() *Config {
	return newConfig(false)
}

func newConfig(online bool) *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" && online {
				slog.Error("DISCORD_APP_TOKEN is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", redact(discordAppToken))
			return discordAppToken
		}(),
		discordClientId: func() string {
			discordClientId := os.Getenv("DISCORD_CLIENT_ID")
			if discordClientId == "" && online {
				slog.Error("DISCORD_CLIENT_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientId)
			return discordClientId
		}(),
		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			if discordGuildID == "" {
				slog.Info("DISCORD_GUILD_ID is not set, commands will be published globally")
				return ""
			}
			slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			return discordGuildID
		}(),

		unitsDir: func() string {
			unitsDir := os.Getenv("UNITS_DIR")
			if unitsDir == "" {
				unitsDir = "./units"
			}
			slog.Debug("env", "UNITS_DIR", unitsDir)
			return filepath.Clean(unitsDir)
		}(),
		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),

		handlerTimeout: func() time.Duration {
			handlerTimeout := os.Getenv("HANDLER_TIMEOUT")
			if handlerTimeout == "" {
				return 0
			}
			duration, err := time.ParseDuration(handlerTimeout)
			if err != nil || duration < 0 {
				slog.Error("invalid HANDLER_TIMEOUT", "value", handlerTimeout, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "HANDLER_TIMEOUT", duration)
			return duration
		}(),
		metricCollectionInterval: func() time.Duration {
			interval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if interval == "" {
				interval = "15s"
			}
			duration, err := time.ParseDuration(interval)
			if err != nil || duration <= 0 {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "value", interval, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),

		reloadToken: func() string {
			reloadToken := os.Getenv("RELOAD_TOKEN")
			if reloadToken == "" {
				slog.Warn("RELOAD_TOKEN is not set, the HTTP reload route is disabled")
				return ""
			}
			slog.Debug("env", "RELOAD_TOKEN", redact(reloadToken))
			return reloadToken
		}(),
	}
}

func redact(secret string) string {
	if len(secret) <= 3 {
		return "..."
	}
	return secret[0:3] + "..."
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CLIENT_ID env
func (c *Config) GetDiscordClientId() string {
	return c.discordClientId
}

// Get DISCORD_GUILD_ID env, empty means global commands
func (c *Config) GetDiscordGuildID() string {
	return c.discordGuildID
}

// Get UNITS_DIR env, default to ./units
func (c *Config) GetUnitsDir() string {
	return c.unitsDir
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get HANDLER_TIMEOUT env, 0 means no timeout
func (c *Config) GetHandlerTimeout() time.Duration {
	return c.handlerTimeout
}

// Get METRIC_COLLECTION_INTERVAL env, default to 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get RELOAD_TOKEN env
func (c *Config) GetReloadToken() string {
	return c.reloadToken
}
