package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/battleship.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:       ":23235",
			IdleTimeout:   30 * time.Minute,
			CleanupPeriod: time.Minute,
		},
		Storage: StorageConfig{
			DBPath: "~/.battleship/matches.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Game: GameConfig{
			Handover: true,
		},
	}
}
