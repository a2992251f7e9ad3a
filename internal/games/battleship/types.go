// Package battleship implements the rules of two-player naval combat:
// fleet placement on a 10x10 board and alternating fire until one fleet is sunk.
// The package is UI-agnostic and deterministic; rendering and input live in
// the platform layer.
package battleship

const (
	// BoardSize is the width and height of a board.
	BoardSize = 10

	// CellCount is the number of cells on a board.
	CellCount = BoardSize * BoardSize

	// FleetCells is the number of cells occupied by a complete fleet.
	FleetCells = 2 + 3 + 3 + 4 + 5
)

// ShipKind identifies one of the five ships in a fleet.
type ShipKind uint8

const (
	Destroyer ShipKind = iota
	Submarine
	Cruiser
	Battleship
	AircraftCarrier

	shipKindCount
)

// AllShips lists every ship kind in placement order.
var AllShips = [...]ShipKind{Destroyer, Submarine, Cruiser, Battleship, AircraftCarrier}

// Length returns the number of cells the ship occupies.
func (k ShipKind) Length() int {
	switch k {
	case Destroyer:
		return 2
	case Submarine, Cruiser:
		return 3
	case Battleship:
		return 4
	case AircraftCarrier:
		return 5
	default:
		return 0
	}
}

// Valid reports whether k is one of the five ship kinds.
func (k ShipKind) Valid() bool {
	return k < shipKindCount
}

// String returns a human-readable name for the ship.
func (k ShipKind) String() string {
	switch k {
	case Destroyer:
		return "Destroyer"
	case Submarine:
		return "Submarine"
	case Cruiser:
		return "Cruiser"
	case Battleship:
		return "Battleship"
	case AircraftCarrier:
		return "Aircraft Carrier"
	default:
		return "Unknown"
	}
}

// Direction is the heading a ship extends in from its start cell.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Step returns the index offset for one cell in this direction.
func (d Direction) Step() int {
	switch d {
	case Up:
		return -BoardSize
	case Down:
		return BoardSize
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d <= Right
}

// Rotate returns the next direction clockwise.
func (d Direction) Rotate() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		return Up
	}
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Player identifies one of the two sides.
type Player uint8

const (
	Player1 Player = iota + 1
	Player2
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Valid reports whether p is Player1 or Player2.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// String returns a human-readable name for the player.
func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Nobody"
	}
}

// CellState is the tag of a Cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellOccupied
	CellHit
	CellMiss
)

// String returns the string representation of a cell state.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellOccupied:
		return "Occupied"
	case CellHit:
		return "Hit"
	case CellMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Cell is a single board position.
// Ship is meaningful only for Occupied and Hit cells.
type Cell struct {
	State CellState
	Ship  ShipKind
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{State: CellEmpty}
}

// Occupied returns a cell holding part of ship k.
func Occupied(k ShipKind) Cell {
	return Cell{State: CellOccupied, Ship: k}
}

// Hit returns a cell where part of ship k was struck.
func Hit(k ShipKind) Cell {
	return Cell{State: CellHit, Ship: k}
}

// Miss returns a cell that was fired at and held no ship.
func Miss() Cell {
	return Cell{State: CellMiss}
}

// Fired reports whether the cell has already been shot at.
func (c Cell) Fired() bool {
	return c.State == CellHit || c.State == CellMiss
}

// HasShip reports whether a ship occupies the cell, struck or not.
func (c Cell) HasShip() bool {
	return c.State == CellOccupied || c.State == CellHit
}

// String returns a compact description such as "Hit(Cruiser)".
func (c Cell) String() string {
	if c.HasShip() {
		return c.State.String() + "(" + c.Ship.String() + ")"
	}
	return c.State.String()
}

// Phase is the stage a game session is in.
type Phase uint8

const (
	PhasePlacingPlayer1 Phase = iota
	PhasePlacingPlayer2
	PhaseCombat
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlacingPlayer1:
		return "Placing (Player 1)"
	case PhasePlacingPlayer2:
		return "Placing (Player 2)"
	case PhaseCombat:
		return "Combat"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// Outcome is the result kind of a shot.
type Outcome uint8

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
)

// ShotResult describes what a successful shot did.
type ShotResult struct {
	Outcome Outcome
	Ship    ShipKind // Valid only when Outcome is OutcomeHit
	Sunk    bool     // The hit reduced Ship's remaining count to zero
}

// String returns a short summary of the shot, e.g. "Sunk(Destroyer)".
func (r ShotResult) String() string {
	switch {
	case r.Outcome == OutcomeMiss:
		return "Miss"
	case r.Sunk:
		return "Sunk(" + r.Ship.String() + ")"
	default:
		return "Hit(" + r.Ship.String() + ")"
	}
}
