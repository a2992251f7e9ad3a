package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/multiplayer"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the battleship SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own hot-seat match. Finished and abandoned
matches are stored in the server's database. Matches idle longer than
server.idle_timeout are expired.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.battleship/host_key

Examples:
  battleship serve                           # Listen on the configured address
  battleship serve --ssh :2222               # Listen on port 2222
  battleship serve --host-key ./my_host_key  # Use specific host key
  battleship serve --db ./matches.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}

	logger, closeLog, err := newLogger(cfg.Log, os.Stderr, "battleship")
	if err != nil {
		return err
	}
	defer closeLog()

	manager := multiplayer.NewManager(multiplayer.ManagerConfig{
		IdleTimeout:   cfg.Server.IdleTimeout,
		CleanupPeriod: cfg.Server.CleanupPeriod,
	}, logger)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		// Continue without storage
		logger.Warn("could not open match database", "error", err)
	} else {
		defer store.Close()
		manager.SetResultSaver(store)
	}

	server, err := tui.NewSSHServer(tui.NewSSHServerConfig(cfg), manager, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	manager.Start()
	defer manager.Stop()

	fmt.Printf("Starting battleship SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
