package multiplayer

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
)

type fakeSaver struct {
	mu      sync.Mutex
	results []MatchResultData
	err     error
}

func (f *fakeSaver) SaveMatchResult(r MatchResultData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return f.err
}

func (f *fakeSaver) saved() []MatchResultData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]MatchResultData(nil), f.results...)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestManager(t *testing.T, cfg ManagerConfig) (*Manager, *fakeSaver, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(cfg, log.New(io.Discard))
	m.now = clock.Now
	saver := &fakeSaver{}
	m.SetResultSaver(saver)
	return m, saver, clock
}

// playOut fills both fleets and trades shots until someone wins.
func playOut(match *Match) (battleship.Player, error) {
	if err := match.PlaceRandomFleet(battleship.Player1); err != nil {
		return 0, err
	}
	if err := match.PlaceRandomFleet(battleship.Player2); err != nil {
		return 0, err
	}

	for i := 0; i < battleship.CellCount; i++ {
		for _, target := range []battleship.Player{battleship.Player2, battleship.Player1} {
			_, err := match.FireShot(target, i)
			if errors.Is(err, battleship.ErrSessionEnded) {
				return match.Snapshot().Winner, nil
			}
			if err != nil {
				return 0, err
			}
		}
	}
	return match.Snapshot().Winner, nil
}

func TestManagerCreateAndGet(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultManagerConfig())

	a := m.Create("alice", 1)
	b := m.Create("bob", 2)

	if a.ID() == b.ID() {
		t.Fatal("matches should get distinct IDs")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", m.Count())
	}

	got, ok := m.Get(a.ID())
	if !ok || got != a {
		t.Error("Get() should return the created match")
	}
	if got.Host() != "alice" {
		t.Errorf("Host() = %q, expected alice", got.Host())
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get() of an unknown ID should fail")
	}
}

func TestMatchCompletedIsSaved(t *testing.T) {
	m, saver, clock := newTestManager(t, DefaultManagerConfig())
	match := m.Create("alice", 7)

	clock.Advance(90 * time.Second)
	winner, err := playOut(match)
	if err != nil {
		t.Fatalf("playOut() failed: %v", err)
	}
	if !winner.Valid() {
		t.Fatalf("expected a winner, got %v", winner)
	}

	select {
	case <-match.Done():
	default:
		t.Error("Done() should be closed after the final shot")
	}
	if !match.Ended() {
		t.Error("Ended() should be true")
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, expected ended match to be removed", m.Count())
	}

	results := saver.saved()
	if len(results) != 1 {
		t.Fatalf("saved %d results, expected 1", len(results))
	}
	r := results[0]
	if r.MatchID != string(match.ID()) || r.Host != "alice" {
		t.Errorf("result identity = %q/%q", r.MatchID, r.Host)
	}
	if r.Winner != int(winner) || r.EndReason != "completed" {
		t.Errorf("result = winner %d reason %q, expected %d completed", r.Winner, r.EndReason, winner)
	}
	if r.DurationSecs != 90 {
		t.Errorf("DurationSecs = %d, expected 90", r.DurationSecs)
	}
	winnerHits := r.Hits1
	if winner == battleship.Player2 {
		winnerHits = r.Hits2
	}
	if winnerHits != battleship.FleetCells {
		t.Errorf("winner hits = %d, expected %d", winnerHits, battleship.FleetCells)
	}

	if _, err := match.FireShot(battleship.Player1, 0); !errors.Is(err, battleship.ErrSessionEnded) {
		t.Errorf("FireShot() after the end = %v, expected ErrSessionEnded", err)
	}
}

func TestMatchCloseAbandons(t *testing.T) {
	m, saver, _ := newTestManager(t, DefaultManagerConfig())
	match := m.Create("bob", 3)

	if err := match.PlaceRandomFleet(battleship.Player1); err != nil {
		t.Fatalf("PlaceRandomFleet() failed: %v", err)
	}

	match.Close(MatchEndReasonAbandoned)
	match.Close(MatchEndReasonAbandoned)

	results := saver.saved()
	if len(results) != 1 {
		t.Fatalf("saved %d results, expected exactly 1", len(results))
	}
	if results[0].EndReason != "abandoned" || results[0].Winner != 0 {
		t.Errorf("result = %+v, expected abandoned without winner", results[0])
	}

	err := match.PlaceShip(battleship.Player2, 0, battleship.Right, battleship.Destroyer)
	if !errors.Is(err, battleship.ErrSessionEnded) {
		t.Errorf("PlaceShip() after Close = %v, expected ErrSessionEnded", err)
	}
}

func TestManagerSweepExpiresIdle(t *testing.T) {
	cfg := ManagerConfig{IdleTimeout: 10 * time.Minute, CleanupPeriod: time.Minute}
	m, saver, clock := newTestManager(t, cfg)

	idle := m.Create("idle", 1)
	busy := m.Create("busy", 2)

	clock.Advance(8 * time.Minute)
	if err := busy.PlaceRandomFleet(battleship.Player1); err != nil {
		t.Fatalf("PlaceRandomFleet() failed: %v", err)
	}
	clock.Advance(5 * time.Minute)

	if n := m.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, expected 1", n)
	}
	if !idle.Ended() || busy.Ended() {
		t.Errorf("Ended() idle=%v busy=%v, expected true/false", idle.Ended(), busy.Ended())
	}
	if _, ok := m.Get(busy.ID()); !ok {
		t.Error("busy match should still be live")
	}

	results := saver.saved()
	if len(results) != 1 || results[0].EndReason != "expired" {
		t.Errorf("saved = %+v, expected one expired result", results)
	}

	// A disabled timeout never expires anything.
	m.config.IdleTimeout = 0
	clock.Advance(time.Hour)
	if n := m.Sweep(); n != 0 {
		t.Errorf("Sweep() with expiry disabled = %d, expected 0", n)
	}
}

func TestManagerSaverErrorIsLogged(t *testing.T) {
	m, saver, _ := newTestManager(t, DefaultManagerConfig())
	saver.err = errors.New("disk full")

	match := m.Create("carol", 4)
	match.Close(MatchEndReasonAbandoned)

	if m.Count() != 0 {
		t.Error("match should be removed even when saving fails")
	}
}

func TestManagerStopAbandonsLive(t *testing.T) {
	cfg := ManagerConfig{IdleTimeout: time.Hour, CleanupPeriod: time.Millisecond}
	m, saver, _ := newTestManager(t, cfg)
	m.Start()

	m.Create("a", 1)
	m.Create("b", 2)
	m.Stop()
	m.Stop()

	if m.Count() != 0 {
		t.Errorf("Count() after Stop = %d, expected 0", m.Count())
	}
	if got := len(saver.saved()); got != 2 {
		t.Errorf("saved %d results, expected 2", got)
	}
}

func TestConcurrentMatchesAreIndependent(t *testing.T) {
	m, saver, _ := newTestManager(t, DefaultManagerConfig())

	const n = 8
	var wg sync.WaitGroup
	winners := make([]battleship.Player, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		match := m.Create("host", int64(i+1))
		wg.Add(1)
		go func(i int, match *Match) {
			defer wg.Done()
			winners[i], errs[i] = playOut(match)
		}(i, match)
	}
	wg.Wait()

	for i, w := range winners {
		if errs[i] != nil {
			t.Errorf("match %d failed: %v", i, errs[i])
		}
		if !w.Valid() {
			t.Errorf("match %d ended without a winner", i)
		}
	}
	if got := len(saver.saved()); got != n {
		t.Errorf("saved %d results, expected %d", got, n)
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", m.Count())
	}
}

func TestMatchEndReasonCode(t *testing.T) {
	tests := []struct {
		reason MatchEndReason
		code   string
	}{
		{MatchEndReasonCompleted, "completed"},
		{MatchEndReasonAbandoned, "abandoned"},
		{MatchEndReasonExpired, "expired"},
		{MatchEndReason(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.reason.Code(); got != tc.code {
			t.Errorf("Code() = %q, expected %q", got, tc.code)
		}
	}
}
