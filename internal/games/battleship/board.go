package battleship

import "fmt"

// Board is one player's grid plus per-ship remaining-hit counters.
// Cells are stored in row-major order: index = row*BoardSize + col.
// The zero value is not usable; create boards with NewBoard.
type Board struct {
	grid      [CellCount]Cell
	remaining [shipKindCount]int
	placed    [shipKindCount]bool
}

// NewBoard creates an empty board with every ship at full strength.
func NewBoard() *Board {
	b := &Board{}
	for _, k := range AllShips {
		b.remaining[k] = k.Length()
	}
	return b
}

// InBounds reports whether index addresses a cell of the board.
func InBounds(index int) bool {
	return index >= 0 && index < CellCount
}

// PlaceShip occupies Length(kind) cells starting at start and extending in dir.
// On failure the board is left unchanged.
func (b *Board) PlaceShip(start int, dir Direction, kind ShipKind) error {
	if !InBounds(start) {
		return fmt.Errorf("%w: start %d", ErrOutOfRange, start)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown ship kind %d", ErrInvalidPlacement, kind)
	}
	if !dir.Valid() {
		return fmt.Errorf("%w: unknown direction %d", ErrInvalidPlacement, dir)
	}
	if b.placed[kind] {
		return fmt.Errorf("%w: %s already placed", ErrInvalidPlacement, kind)
	}

	// Walk a working copy; it replaces the live grid only if every cell fits.
	work := b.grid
	length := kind.Length()
	index := start
	for n := 0; n < length; n++ {
		if !InBounds(index) {
			return fmt.Errorf("%w: %s leaves the board", ErrInvalidPlacement, kind)
		}
		if work[index].State != CellEmpty {
			return fmt.Errorf("%w: %s overlaps %s at %s",
				ErrInvalidPlacement, kind, work[index].Ship, FormatCoord(index))
		}
		work[index] = Occupied(kind)

		if n == length-1 {
			break
		}
		if crossesRow(index, dir) {
			return fmt.Errorf("%w: %s wraps past the edge of row %c",
				ErrInvalidPlacement, kind, rowLetter(index))
		}
		index += dir.Step()
	}

	b.grid = work
	b.placed[kind] = true
	return nil
}

// crossesRow reports whether stepping from index in dir would wrap to another row.
func crossesRow(index int, dir Direction) bool {
	switch dir {
	case Left:
		return index%BoardSize == 0
	case Right:
		return (index+1)%BoardSize == 0
	default:
		return false
	}
}

// FireShot resolves a shot at index.
// Cells that were already fired at are rejected with ErrAlreadyFired.
func (b *Board) FireShot(index int) (ShotResult, error) {
	if !InBounds(index) {
		return ShotResult{}, fmt.Errorf("%w: target %d", ErrOutOfRange, index)
	}

	cell := b.grid[index]
	switch cell.State {
	case CellOccupied:
		b.grid[index] = Hit(cell.Ship)
		if b.remaining[cell.Ship] > 0 {
			b.remaining[cell.Ship]--
		}
		return ShotResult{
			Outcome: OutcomeHit,
			Ship:    cell.Ship,
			Sunk:    b.remaining[cell.Ship] == 0,
		}, nil
	case CellEmpty:
		b.grid[index] = Miss()
		return ShotResult{Outcome: OutcomeMiss}, nil
	default:
		return ShotResult{}, fmt.Errorf("%w: %s is %s", ErrAlreadyFired, FormatCoord(index), cell)
	}
}

// IsShipSunk reports whether every cell of kind has been hit.
// A ship that was never placed is never sunk.
func (b *Board) IsShipSunk(kind ShipKind) bool {
	if !kind.Valid() {
		return false
	}
	return b.remaining[kind] == 0
}

// HasLost reports whether all five ships are sunk.
func (b *Board) HasLost() bool {
	for _, k := range AllShips {
		if !b.IsShipSunk(k) {
			return false
		}
	}
	return true
}

// CellAt returns the cell at index.
func (b *Board) CellAt(index int) (Cell, error) {
	if !InBounds(index) {
		return Cell{}, fmt.Errorf("%w: cell %d", ErrOutOfRange, index)
	}
	return b.grid[index], nil
}

// Remaining returns how many unhit cells kind still has.
func (b *Board) Remaining(kind ShipKind) int {
	if !kind.Valid() {
		return 0
	}
	return b.remaining[kind]
}

// Placed reports whether kind is on the board.
func (b *Board) Placed(kind ShipKind) bool {
	return kind.Valid() && b.placed[kind]
}

// Cells returns a copy of the grid.
func (b *Board) Cells() [CellCount]Cell {
	return b.grid
}
