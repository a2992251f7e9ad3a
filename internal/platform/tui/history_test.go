package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

type fakeHistory struct {
	records  []storage.MatchRecord
	err      error
	lastHost string
}

func (f *fakeHistory) RecentMatches(host string, limit int) ([]storage.MatchRecord, error) {
	f.lastHost = host
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeHistory) Stats() (*storage.Stats, error) {
	return &storage.Stats{Matches: len(f.records)}, nil
}

func TestHistoryRows(t *testing.T) {
	created := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	rows := historyRows([]storage.MatchRecord{
		{Host: "alice", Winner: 2, EndReason: "completed", Shots1: 40, Hits1: 15, Shots2: 38, Hits2: 17, Duration: 125, CreatedAt: created},
		{Host: "bob", Winner: 0, EndReason: "expired"},
	})

	if len(rows) != 2 {
		t.Fatalf("historyRows() returned %d rows, expected 2", len(rows))
	}
	expected := []string{"Mar 05 14:30", "alice", "P2 won", "15/40", "17/38", "2m5s"}
	for i, want := range expected {
		if rows[0][i] != want {
			t.Errorf("row[0][%d] = %q, expected %q", i, rows[0][i], want)
		}
	}
	if rows[1][2] != "expired" {
		t.Errorf("unfinished match result = %q, expected the end reason", rows[1][2])
	}
}

func TestHistoryModelView(t *testing.T) {
	src := &fakeHistory{records: []storage.MatchRecord{
		{MatchID: "a", Host: "alice", Winner: 1, EndReason: "completed"},
	}}
	m := NewHistoryModel(src, "alice", 100, 30)

	if src.lastHost != "alice" {
		t.Errorf("host filter = %q, expected alice", src.lastHost)
	}
	out := m.View()
	if !strings.Contains(out, "MATCH HISTORY - alice") || !strings.Contains(out, "P1 won") {
		t.Errorf("View() missing title or row:\n%s", out)
	}

	empty := NewHistoryModel(&fakeHistory{}, "", 100, 30)
	if !strings.Contains(empty.View(), "No matches recorded yet") {
		t.Error("empty history should show a placeholder")
	}

	failing := NewHistoryModel(&fakeHistory{err: errors.New("locked")}, "", 100, 30)
	if !strings.Contains(failing.View(), "Could not load history: locked") {
		t.Error("load errors should be shown")
	}
}

func TestDrawBoardHidesShips(t *testing.T) {
	s := battleship.NewSession()
	if err := s.PlaceShip(battleship.Player1, 0, battleship.Right, battleship.Destroyer); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}
	snap := s.Snapshot()

	screen := core.NewScreen(boardWidth, boardHeight)
	drawBoard(screen, 0, 0, snap, battleship.Player1, boardView{cursor: -1})
	if strings.ContainsRune(screen.String(), '■') {
		t.Error("hidden board must not show ships")
	}

	screen.Clear()
	drawBoard(screen, 0, 0, snap, battleship.Player1, boardView{reveal: true, cursor: -1})
	// Row A starts below the box and header; cells begin after the label.
	row := []rune(screen.Row(2))
	if row[1+labelWidth] != '■' || row[1+labelWidth+cellWidth] != '■' {
		t.Errorf("revealed row A = %q, expected destroyer at A1-A2", string(row))
	}
	if row[1+labelWidth+2*cellWidth] != '·' {
		t.Errorf("A3 = %q, expected empty water", row[1+labelWidth+2*cellWidth])
	}
}
