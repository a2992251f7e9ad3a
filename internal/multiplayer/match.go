package multiplayer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
)

// MatchResult contains the outcome of an ended match.
type MatchResult struct {
	MatchID  MatchID
	Host     string
	Reason   MatchEndReason
	Winner   battleship.Player // Zero unless the match was completed
	Stats1   battleship.PlayerStats
	Stats2   battleship.PlayerStats
	Duration time.Duration
}

// Data converts the result into its persisted form.
func (r MatchResult) Data() MatchResultData {
	return MatchResultData{
		MatchID:      string(r.MatchID),
		Host:         r.Host,
		Winner:       int(r.Winner),
		EndReason:    r.Reason.Code(),
		Shots1:       r.Stats1.Shots,
		Hits1:        r.Stats1.Hits,
		Shots2:       r.Stats2.Shots,
		Hits2:        r.Stats2.Hits,
		DurationSecs: int(r.Duration / time.Second),
	}
}

// Match is one hosted game session. All methods are safe for concurrent use.
type Match struct {
	id        MatchID
	host      string
	createdAt time.Time
	now       func() time.Time

	mu         sync.Mutex
	session    *battleship.Session
	rng        *rand.Rand
	lastActive time.Time
	ended      bool

	done     chan struct{}
	doneOnce sync.Once

	onEnd func(MatchResult)
}

func newMatch(id MatchID, host string, seed int64, now func() time.Time, onEnd func(MatchResult)) *Match {
	created := now()
	return &Match{
		id:         id,
		host:       host,
		createdAt:  created,
		now:        now,
		session:    battleship.NewSession(),
		rng:        rand.New(rand.NewSource(seed)),
		lastActive: created,
		done:       make(chan struct{}),
		onEnd:      onEnd,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Host returns the user that created the match.
func (m *Match) Host() string {
	return m.host
}

// CreatedAt returns when the match was created.
func (m *Match) CreatedAt() time.Time {
	return m.createdAt
}

// Done is closed once the match has ended for any reason.
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// Ended reports whether the match has ended.
func (m *Match) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

// LastActive returns the time of the last accepted or rejected move.
func (m *Match) LastActive() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActive
}

// PlaceShip places a ship for player.
func (m *Match) PlaceShip(player battleship.Player, start int, dir battleship.Direction, kind battleship.ShipKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ended {
		return battleship.ErrSessionEnded
	}
	m.lastActive = m.now()
	return m.session.PlaceShip(player, start, dir, kind)
}

// PlaceRandomFleet places player's remaining ships using the match's RNG.
func (m *Match) PlaceRandomFleet(player battleship.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ended {
		return battleship.ErrSessionEnded
	}
	m.lastActive = m.now()
	return m.session.PlaceRandomFleet(player, m.rng)
}

// FireShot fires at target's board. The shot that sinks the last ship
// ends the match and reports it as completed.
func (m *Match) FireShot(target battleship.Player, index int) (battleship.ShotResult, error) {
	m.mu.Lock()
	if m.ended {
		m.mu.Unlock()
		return battleship.ShotResult{}, battleship.ErrSessionEnded
	}
	m.lastActive = m.now()
	res, err := m.session.FireShot(target, index)
	var result MatchResult
	finished := false
	if err == nil && m.session.Phase() == battleship.PhaseGameOver {
		result, finished = m.finishLocked(MatchEndReasonCompleted)
	}
	m.mu.Unlock()

	// Report outside the lock; the manager takes its own lock.
	if finished {
		m.report(result)
	}
	return res, err
}

// Snapshot returns a copy of the session state.
func (m *Match) Snapshot() battleship.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Snapshot()
}

// Close ends the match with the given reason. Closing an ended match is a no-op.
func (m *Match) Close(reason MatchEndReason) {
	m.mu.Lock()
	result, finished := m.finishLocked(reason)
	m.mu.Unlock()

	if finished {
		m.report(result)
	}
}

// expireIfIdle ends the match when it has been idle since before cutoff.
func (m *Match) expireIfIdle(cutoff time.Time) bool {
	m.mu.Lock()
	if m.ended || !m.lastActive.Before(cutoff) {
		m.mu.Unlock()
		return false
	}
	result, finished := m.finishLocked(MatchEndReasonExpired)
	m.mu.Unlock()

	if finished {
		m.report(result)
	}
	return finished
}

func (m *Match) finishLocked(reason MatchEndReason) (MatchResult, bool) {
	if m.ended {
		return MatchResult{}, false
	}
	m.ended = true

	result := MatchResult{
		MatchID:  m.id,
		Host:     m.host,
		Reason:   reason,
		Stats1:   m.session.Stats(battleship.Player1),
		Stats2:   m.session.Stats(battleship.Player2),
		Duration: m.now().Sub(m.createdAt),
	}
	if winner, ok := m.session.Winner(); ok && reason == MatchEndReasonCompleted {
		result.Winner = winner
	}
	return result, true
}

func (m *Match) report(result MatchResult) {
	m.doneOnce.Do(func() {
		close(m.done)
	})
	if m.onEnd != nil {
		m.onEnd(result)
	}
}
