// Package multiplayer hosts battleship matches for the platform layer.
// Each match wraps one game session behind its own lock; matches share no
// mutable state, so many can run side by side under an SSH server.
package multiplayer

import "time"

// MatchID uniquely identifies a hosted match.
type MatchID string

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted MatchEndReason = iota // A fleet was sunk
	MatchEndReasonAbandoned                       // Players quit before the end
	MatchEndReasonExpired                         // Idle longer than the timeout
)

// String returns a human-readable description of the reason.
func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonAbandoned:
		return "Match abandoned"
	case MatchEndReasonExpired:
		return "Match expired"
	default:
		return "Unknown"
	}
}

// Code returns the short form stored with match results.
func (r MatchEndReason) Code() string {
	switch r {
	case MatchEndReasonCompleted:
		return "completed"
	case MatchEndReasonAbandoned:
		return "abandoned"
	case MatchEndReasonExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MatchResultSaver is an interface for saving match results.
// This allows the manager to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID      string
	Host         string
	Winner       int // 1 or 2, 0 if nobody won
	EndReason    string
	Shots1       int
	Hits1        int
	Shots2       int
	Hits2        int
	DurationSecs int
}

// ManagerConfig holds configuration for the match manager.
type ManagerConfig struct {
	IdleTimeout   time.Duration // Matches idle this long are expired; 0 disables expiry
	CleanupPeriod time.Duration // How often to look for idle matches
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		IdleTimeout:   30 * time.Minute,
		CleanupPeriod: time.Minute,
	}
}
