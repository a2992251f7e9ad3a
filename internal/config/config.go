// Package config provides YAML-based configuration loading for the
// battleship platform: SSH hosting, match storage, logging and game options.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig configures the SSH host.
type ServerConfig struct {
	Address       string        `yaml:"address"`
	HostKeyPath   string        `yaml:"host_key"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	CleanupPeriod time.Duration `yaml:"cleanup_period"`
}

// StorageConfig configures match history persistence.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty means stderr for servers, discard for play
}

// GameConfig holds per-match options.
type GameConfig struct {
	Seed     int64 `yaml:"seed"`     // 0 = random based on time
	Handover bool  `yaml:"handover"` // Hide boards between turns on a shared screen
}

// Validate checks values that would make the platform misbehave.
func (c Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("config: server.address must not be empty")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	if c.Server.CleanupPeriod <= 0 {
		return fmt.Errorf("config: server.cleanup_period must be positive")
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}
