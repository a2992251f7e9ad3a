package multiplayer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Manager owns the set of live matches. Ended matches are removed and,
// when a saver is set, their results persisted.
type Manager struct {
	config ManagerConfig
	logger *log.Logger
	now    func() time.Time

	mu      sync.RWMutex
	matches map[MatchID]*Match
	saver   MatchResultSaver

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewManager creates a match manager. A nil logger uses the default logger.
func NewManager(config ManagerConfig, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		config:  config,
		logger:  logger.WithPrefix("matches"),
		now:     time.Now,
		matches: make(map[MatchID]*Match),
		done:    make(chan struct{}),
	}
}

// SetResultSaver sets the saver used to persist ended matches.
func (m *Manager) SetResultSaver(saver MatchResultSaver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saver = saver
}

// Start begins the idle sweeper. It does nothing when expiry is disabled.
func (m *Manager) Start() {
	if m.config.IdleTimeout <= 0 || m.config.CleanupPeriod <= 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupLoop()
}

// Stop halts the sweeper and abandons every live match.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()

	for _, match := range m.list() {
		match.Close(MatchEndReasonAbandoned)
	}
}

// Create starts a new match for host. A zero seed picks one from the clock.
func (m *Manager) Create(host string, seed int64) *Match {
	if seed == 0 {
		seed = m.now().UnixNano()
	}
	id := MatchID(uuid.NewString())
	match := newMatch(id, host, seed, m.now, m.handleEnd)

	m.mu.Lock()
	m.matches[id] = match
	count := len(m.matches)
	m.mu.Unlock()

	m.logger.Debug("match created", "id", id, "host", host, "live", count)
	return match
}

// Get returns a live match by ID.
func (m *Manager) Get(id MatchID) (*Match, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[id]
	return match, ok
}

// Count returns the number of live matches.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// Sweep expires every match idle longer than the configured timeout and
// returns how many were expired.
func (m *Manager) Sweep() int {
	if m.config.IdleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.config.IdleTimeout)

	expired := 0
	for _, match := range m.list() {
		if match.expireIfIdle(cutoff) {
			expired++
		}
	}
	return expired
}

func (m *Manager) list() []*Match {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matches := make([]*Match, 0, len(m.matches))
	for _, match := range m.matches {
		matches = append(matches, match)
	}
	return matches
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Info("expired idle matches", "count", n)
			}
		}
	}
}

// handleEnd removes an ended match and saves its result.
func (m *Manager) handleEnd(result MatchResult) {
	m.mu.Lock()
	delete(m.matches, result.MatchID)
	saver := m.saver
	m.mu.Unlock()

	m.logger.Info("match ended",
		"id", result.MatchID,
		"host", result.Host,
		"reason", result.Reason.Code(),
		"winner", int(result.Winner),
		"duration", result.Duration.Round(time.Second),
	)

	if saver == nil {
		return
	}
	if err := saver.SaveMatchResult(result.Data()); err != nil {
		m.logger.Error("failed to save match result", "id", result.MatchID, "err", err)
	}
}
