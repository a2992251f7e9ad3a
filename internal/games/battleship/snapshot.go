package battleship

// Snapshot is an immutable copy of a session's state, used by renderers
// that must not hold the session while drawing.
type Snapshot struct {
	Phase       Phase
	Turn        Player
	Winner      Player // Zero until the game is over
	PlacedCells int

	Boards    [2][CellCount]Cell
	Remaining [2][shipKindCount]int
	Placed    [2][shipKindCount]bool
	Stats     [2]PlayerStats
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		Turn:        s.turn,
		Winner:      s.winner,
		PlacedCells: s.placedCells,
		Stats:       s.stats,
	}
	for i, b := range s.boards {
		snap.Boards[i] = b.grid
		snap.Remaining[i] = b.remaining
		snap.Placed[i] = b.placed
	}
	return snap
}

// CellAt returns the cell at index on p's board, or Empty when out of range.
func (s Snapshot) CellAt(p Player, index int) Cell {
	if !p.Valid() || !InBounds(index) {
		return Empty()
	}
	return s.Boards[p-1][index]
}

// RemainingOf returns the unhit cell count of p's ship of kind k.
func (s Snapshot) RemainingOf(p Player, k ShipKind) int {
	if !p.Valid() || !k.Valid() {
		return 0
	}
	return s.Remaining[p-1][k]
}

// IsPlaced reports whether p has placed ship k.
func (s Snapshot) IsPlaced(p Player, k ShipKind) bool {
	return p.Valid() && k.Valid() && s.Placed[p-1][k]
}

// IsSunk reports whether p's ship k is sunk.
func (s Snapshot) IsSunk(p Player, k ShipKind) bool {
	return p.Valid() && k.Valid() && s.Remaining[p-1][k] == 0
}

// StatsOf returns p's firing statistics.
func (s Snapshot) StatsOf(p Player) PlayerStats {
	if !p.Valid() {
		return PlayerStats{}
	}
	return s.Stats[p-1]
}
