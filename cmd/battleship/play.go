package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-battleship/internal/multiplayer"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var flagNoHandover bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat match",
	Long: `Start a two-player match on this terminal.

Players share the keyboard. Between turns a handover screen hides the
boards so neither player sees the other's fleet.

Controls:
  Arrows/hjkl  - Move cursor
  Enter/Space  - Place ship / fire
  R            - Rotate ship
  Tab          - Select next ship
  F            - Place remaining ships randomly
  N            - New game (after game over)
  ?            - Show all keys
  Q/Ctrl+C     - Quit

Examples:
  battleship play
  battleship play --seed 42
  battleship play --no-handover`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoHandover, "no-handover", false, "Do not hide boards between turns")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs would corrupt the TUI, so they only go to a configured file.
	logger, closeLog, err := newLogger(cfg.Log, io.Discard, "battleship")
	if err != nil {
		return err
	}
	defer closeLog()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs an interactive terminal")
	}
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	manager := multiplayer.NewManager(multiplayer.ManagerConfig{}, logger)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		// Play without history
		logger.Warn("could not open match database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
	} else {
		defer store.Close()
		manager.SetResultSaver(store)
	}

	runErr := tui.Run(manager, tui.ModelConfig{
		Host:     localHost(),
		Seed:     cfg.Game.Seed,
		Handover: cfg.Game.Handover && !flagNoHandover,
		Width:    width,
		Height:   height,
	})

	// Abandons a match left unfinished, so it is still recorded.
	manager.Stop()

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

// localHost names the local player for match history.
func localHost() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
