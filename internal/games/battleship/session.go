package battleship

import (
	"fmt"
	"math/rand"
)

// PlayerStats counts the shots a player has fired at the opponent.
type PlayerStats struct {
	Shots int
	Hits  int
	Sunk  int
}

// Session is one match between Player1 and Player2.
// It is the only entry point collaborators use: placement during the two
// placing phases, then alternating fire until one fleet is lost.
//
// A Session is not safe for concurrent use; hosts serialize calls per session.
type Session struct {
	boards      [2]*Board
	stats       [2]PlayerStats
	phase       Phase
	turn        Player
	placedCells int
	winner      Player
}

// NewSession creates a session with two empty boards, waiting for Player1 to place.
func NewSession() *Session {
	return &Session{
		boards: [2]*Board{NewBoard(), NewBoard()},
		phase:  PhasePlacingPlayer1,
		turn:   Player1,
	}
}

func (s *Session) board(p Player) *Board {
	return s.boards[p-1]
}

// PlaceShip places kind on player's board.
// Only the player whose placement phase it is may place.
func (s *Session) PlaceShip(player Player, start int, dir Direction, kind ShipKind) error {
	if err := s.checkPlacer(player); err != nil {
		return err
	}

	if err := s.board(player).PlaceShip(start, dir, kind); err != nil {
		return err
	}

	s.placedCells += kind.Length()
	if s.placedCells < FleetCells {
		return nil
	}

	s.placedCells = 0
	if s.phase == PhasePlacingPlayer1 {
		s.phase = PhasePlacingPlayer2
		s.turn = Player2
	} else {
		s.phase = PhaseCombat
		s.turn = Player1
	}
	return nil
}

func (s *Session) checkPlacer(player Player) error {
	switch s.phase {
	case PhaseGameOver:
		return ErrSessionEnded
	case PhaseCombat:
		return fmt.Errorf("%w: placement is over", ErrWrongPhase)
	}
	if !player.Valid() {
		return fmt.Errorf("%w: unknown player %d", ErrWrongTurn, player)
	}
	if player != s.turn {
		return fmt.Errorf("%w: %s is placing", ErrWrongTurn, s.turn)
	}
	return nil
}

// PlaceRandomFleet places every ship player has not placed yet at random,
// valid positions. Placement goes through PlaceShip, so completing the
// fleet advances the phase exactly as manual placement would.
func (s *Session) PlaceRandomFleet(player Player, rng *rand.Rand) error {
	if err := s.checkPlacer(player); err != nil {
		return err
	}

	b := s.board(player)
	for _, kind := range AllShips {
		if b.Placed(kind) {
			continue
		}
		if err := s.placeRandom(player, kind, rng); err != nil {
			return err
		}
	}
	return nil
}

// placeRandom tries random positions first, then falls back to a full scan
// so a crowded board still finds a slot when one exists.
func (s *Session) placeRandom(player Player, kind ShipKind, rng *rand.Rand) error {
	const attempts = 200

	for i := 0; i < attempts; i++ {
		start := rng.Intn(CellCount)
		dir := Direction(rng.Intn(4))
		if err := s.PlaceShip(player, start, dir, kind); err == nil {
			return nil
		}
	}

	for start := 0; start < CellCount; start++ {
		for _, dir := range [...]Direction{Right, Down, Left, Up} {
			if err := s.PlaceShip(player, start, dir, kind); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: no room left for %s", ErrInvalidPlacement, kind)
}

// FireShot fires at target's board on behalf of the player whose turn it is.
// The target must be the opponent of the current turn holder.
func (s *Session) FireShot(target Player, index int) (ShotResult, error) {
	switch s.phase {
	case PhaseGameOver:
		return ShotResult{}, ErrSessionEnded
	case PhasePlacingPlayer1, PhasePlacingPlayer2:
		return ShotResult{}, fmt.Errorf("%w: fleets are still being placed", ErrWrongPhase)
	}
	if !target.Valid() {
		return ShotResult{}, fmt.Errorf("%w: unknown target %d", ErrWrongTurn, target)
	}
	if target == s.turn {
		return ShotResult{}, fmt.Errorf("%w: %s cannot fire at their own board", ErrWrongTurn, s.turn)
	}

	attacker := s.turn
	board := s.board(target)
	result, err := board.FireShot(index)
	if err != nil {
		return ShotResult{}, err
	}

	st := &s.stats[attacker-1]
	st.Shots++
	if result.Outcome == OutcomeHit {
		st.Hits++
	}
	if result.Sunk {
		st.Sunk++
	}

	s.turn = target
	if board.HasLost() {
		s.phase = PhaseGameOver
		s.winner = attacker
	}
	return result, nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Turn returns the player expected to act: the placing player during
// placement, the attacker during combat.
func (s *Session) Turn() Player {
	return s.turn
}

// Winner returns the winning player once the game is over.
func (s *Session) Winner() (Player, bool) {
	if s.phase != PhaseGameOver {
		return 0, false
	}
	return s.winner, true
}

// PlacedCells returns how many cells the current placing player has occupied.
func (s *Session) PlacedCells() int {
	return s.placedCells
}

// IsShipSunk reports whether player's ship of the given kind is sunk.
func (s *Session) IsShipSunk(player Player, kind ShipKind) bool {
	if !player.Valid() {
		return false
	}
	return s.board(player).IsShipSunk(kind)
}

// HasLost reports whether player's whole fleet is sunk.
func (s *Session) HasLost(player Player) bool {
	if !player.Valid() {
		return false
	}
	return s.board(player).HasLost()
}

// CellAt returns the cell at index on player's board.
func (s *Session) CellAt(player Player, index int) (Cell, error) {
	if !player.Valid() {
		return Cell{}, fmt.Errorf("%w: unknown player %d", ErrOutOfRange, player)
	}
	return s.board(player).CellAt(index)
}

// Remaining returns how many unhit cells player's ship of kind has left.
func (s *Session) Remaining(player Player, kind ShipKind) int {
	if !player.Valid() {
		return 0
	}
	return s.board(player).Remaining(kind)
}

// Placed reports whether player has placed the ship of kind.
func (s *Session) Placed(player Player, kind ShipKind) bool {
	if !player.Valid() {
		return false
	}
	return s.board(player).Placed(kind)
}

// Stats returns the shots fired by player so far.
func (s *Session) Stats(player Player) PlayerStats {
	if !player.Valid() {
		return PlayerStats{}
	}
	return s.stats[player-1]
}

// Cells returns a copy of player's grid.
func (s *Session) Cells(player Player) [CellCount]Cell {
	if !player.Valid() {
		return [CellCount]Cell{}
	}
	return s.board(player).Cells()
}
