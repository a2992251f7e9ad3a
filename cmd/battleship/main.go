// battleship is a two-player Battleship game for the terminal.
//
// Usage:
//
//	battleship play      - Play a hot-seat match in this terminal
//	battleship serve     - Start SSH server for remote play
//	battleship history   - Browse finished matches
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.battleship, ./configs)
//	--db <path>         - Override the match database path
//	--seed <value>      - Set RNG seed for reproducible random fleets
//	--log-level <lvl>   - Override the log level (debug, info, warn, error)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - sink the enemy fleet in your terminal",
	Long: `Battleship is the classic two-player naval game for the terminal.

Each player hides five ships on a 10x10 grid, then players take turns
firing at each other's grid. The first to sink the whole enemy fleet wins.

Available commands:
  play     - Hot-seat match in this terminal
  serve    - Start SSH server for remote play
  history  - Browse finished matches

Examples:
  battleship play
  battleship play --seed 42
  battleship serve --ssh :2222
  battleship history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to match database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value or time based)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the config file and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg. Without a log file it
// writes to fallback. The returned close function releases the file.
func newLogger(cfg config.LogConfig, fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}

	if cfg.File != "" {
		path, err := config.ExpandHome(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
