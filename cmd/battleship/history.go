package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var (
	flagHistoryHost  string
	flagHistoryLimit int
	flagHistoryPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished matches",
	Long: `Display recorded matches, newest first, with win totals.

In an interactive terminal the history opens in a scrollable table.
Use --plain (or pipe the output) for a text listing.

Examples:
  battleship history
  battleship history --host alice
  battleship history --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryHost, "host", "", "Only show matches hosted by this user")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to list in plain mode")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a text listing instead of the table")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening match database: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, flagHistoryHost, width, height)
	}

	return printHistory(store)
}

func printHistory(store *storage.Store) error {
	records, err := store.RecentMatches(flagHistoryHost, flagHistoryLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'battleship play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-10s  %-7s  %-7s  %s\n", "Date", "Host", "Result", "P1 hits", "P2 hits", "Time")
	fmt.Printf("  %-16s  %-10s  %-10s  %-7s  %-7s  %s\n", "----", "----", "------", "-------", "-------", "----")

	for _, r := range records {
		result := r.EndReason
		if r.Winner == 1 || r.Winner == 2 {
			result = fmt.Sprintf("P%d won", r.Winner)
		}
		fmt.Printf("  %-16s  %-10s  %-10s  %-7s  %-7s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Host,
			result,
			fmt.Sprintf("%d/%d", r.Hits1, r.Shots1),
			fmt.Sprintf("%d/%d", r.Hits2, r.Shots2),
			time.Duration(r.Duration)*time.Second,
		)
	}

	fmt.Println()
	fmt.Printf("Total: %d matches, %d completed (P1 %d, P2 %d), %d unfinished\n",
		stats.Matches, stats.Completed, stats.WinsP1, stats.WinsP2, stats.Abandoned)
	return nil
}
