package battleship

import (
	"errors"
	"testing"
)

func TestShipLengths(t *testing.T) {
	tests := []struct {
		kind     ShipKind
		expected int
	}{
		{Destroyer, 2},
		{Submarine, 3},
		{Cruiser, 3},
		{Battleship, 4},
		{AircraftCarrier, 5},
		{shipKindCount, 0},
	}

	total := 0
	for _, tc := range tests {
		if got := tc.kind.Length(); got != tc.expected {
			t.Errorf("%s.Length() = %d, expected %d", tc.kind, got, tc.expected)
		}
		total += tc.kind.Length()
	}
	if total != FleetCells {
		t.Errorf("fleet occupies %d cells, expected %d", total, FleetCells)
	}
}

func TestPlaceShipOccupiesExactCells(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		dir      Direction
		kind     ShipKind
		expected []int
	}{
		{"destroyer down from corner", 0, Down, Destroyer, []int{0, 10}},
		{"destroyer up from bottom", 95, Up, Destroyer, []int{95, 85}},
		{"cruiser right", 21, Right, Cruiser, []int{21, 22, 23}},
		{"submarine left ending at column 0", 42, Left, Submarine, []int{42, 41, 40}},
		{"carrier right touching last column", 5, Right, AircraftCarrier, []int{5, 6, 7, 8, 9}},
		{"battleship down to last row", 69, Down, Battleship, []int{69, 79, 89, 99}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard()
			if err := b.PlaceShip(tc.start, tc.dir, tc.kind); err != nil {
				t.Fatalf("PlaceShip() failed: %v", err)
			}

			want := make(map[int]bool)
			for _, i := range tc.expected {
				want[i] = true
			}

			occupied := 0
			for i := 0; i < CellCount; i++ {
				cell, _ := b.CellAt(i)
				if want[i] {
					if cell != Occupied(tc.kind) {
						t.Errorf("cell %s = %s, expected %s", FormatCoord(i), cell, Occupied(tc.kind))
					}
				}
				if cell.State == CellOccupied {
					occupied++
				}
			}
			if occupied != tc.kind.Length() {
				t.Errorf("occupied %d cells, expected %d", occupied, tc.kind.Length())
			}
		})
	}
}

func TestPlaceShipEveryValidPosition(t *testing.T) {
	// Any in-bounds, non-wrapping placement on an empty board succeeds.
	for _, kind := range AllShips {
		for start := 0; start < CellCount; start++ {
			for _, dir := range []Direction{Up, Down, Left, Right} {
				row, col := start/BoardSize, start%BoardSize
				n := kind.Length() - 1
				fits := false
				switch dir {
				case Up:
					fits = row-n >= 0
				case Down:
					fits = row+n < BoardSize
				case Left:
					fits = col-n >= 0
				case Right:
					fits = col+n < BoardSize
				}

				b := NewBoard()
				err := b.PlaceShip(start, dir, kind)
				if fits && err != nil {
					t.Errorf("PlaceShip(%s, %s, %s) failed: %v", FormatCoord(start), dir, kind, err)
				}
				if !fits && !errors.Is(err, ErrInvalidPlacement) {
					t.Errorf("PlaceShip(%s, %s, %s) = %v, expected ErrInvalidPlacement", FormatCoord(start), dir, kind, err)
				}
			}
		}
	}
}

func TestPlaceShipRejections(t *testing.T) {
	tests := []struct {
		name  string
		start int
		dir   Direction
		kind  ShipKind
		want  error
	}{
		{"destroyer at 9 heading right wraps", 9, Right, Destroyer, ErrInvalidPlacement},
		{"destroyer at 10 heading left wraps", 10, Left, Destroyer, ErrInvalidPlacement},
		{"carrier off the top", 20, Up, AircraftCarrier, ErrInvalidPlacement},
		{"battleship off the bottom", 80, Down, Battleship, ErrInvalidPlacement},
		{"cruiser overlapping", 12, Down, Cruiser, ErrInvalidPlacement},
		{"negative start", -1, Right, Destroyer, ErrOutOfRange},
		{"start past the board", 100, Left, Destroyer, ErrOutOfRange},
		{"unknown kind", 50, Right, shipKindCount, ErrInvalidPlacement},
		{"unknown direction", 50, Direction(9), Destroyer, ErrInvalidPlacement},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard()
			// A submarine along row B gives the overlap case something to hit.
			if err := b.PlaceShip(11, Right, Submarine); err != nil {
				t.Fatalf("setup PlaceShip() failed: %v", err)
			}
			before := b.Cells()

			err := b.PlaceShip(tc.start, tc.dir, tc.kind)
			if !errors.Is(err, tc.want) {
				t.Fatalf("PlaceShip() = %v, expected %v", err, tc.want)
			}
			if b.Cells() != before {
				t.Error("board changed after failed placement")
			}
		})
	}
}

func TestPlaceShipTwiceRejected(t *testing.T) {
	b := NewBoard()
	if err := b.PlaceShip(0, Right, Cruiser); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}
	before := b.Cells()

	err := b.PlaceShip(50, Right, Cruiser)
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("second Cruiser: got %v, expected ErrInvalidPlacement", err)
	}
	if b.Cells() != before {
		t.Error("board changed after rejected duplicate ship")
	}
}

func TestFireShot(t *testing.T) {
	b := NewBoard()
	if err := b.PlaceShip(0, Down, Destroyer); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}

	// Miss leaves counters alone.
	res, err := b.FireShot(55)
	if err != nil {
		t.Fatalf("FireShot(55) failed: %v", err)
	}
	if res.Outcome != OutcomeMiss {
		t.Errorf("FireShot(55) = %s, expected Miss", res)
	}
	if cell, _ := b.CellAt(55); cell != Miss() {
		t.Errorf("cell 55 = %s, expected Miss", cell)
	}
	if b.Remaining(Destroyer) != 2 {
		t.Errorf("Remaining(Destroyer) = %d after miss, expected 2", b.Remaining(Destroyer))
	}

	res, err = b.FireShot(0)
	if err != nil {
		t.Fatalf("FireShot(0) failed: %v", err)
	}
	if res.Outcome != OutcomeHit || res.Ship != Destroyer || res.Sunk {
		t.Errorf("FireShot(0) = %s, expected Hit(Destroyer)", res)
	}
	if b.Remaining(Destroyer) != 1 {
		t.Errorf("Remaining(Destroyer) = %d, expected 1", b.Remaining(Destroyer))
	}
	if b.IsShipSunk(Destroyer) {
		t.Error("Destroyer sunk after one hit")
	}

	res, err = b.FireShot(10)
	if err != nil {
		t.Fatalf("FireShot(10) failed: %v", err)
	}
	if !res.Sunk {
		t.Errorf("FireShot(10) = %s, expected Sunk(Destroyer)", res)
	}
	if b.Remaining(Destroyer) != 0 || !b.IsShipSunk(Destroyer) {
		t.Error("Destroyer should be sunk after two hits")
	}
}

func TestFireShotTwiceRejected(t *testing.T) {
	b := NewBoard()
	if err := b.PlaceShip(0, Right, Destroyer); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}

	for _, index := range []int{0, 50} {
		if _, err := b.FireShot(index); err != nil {
			t.Fatalf("FireShot(%d) failed: %v", index, err)
		}
		before := b.Cells()
		remaining := b.Remaining(Destroyer)

		if _, err := b.FireShot(index); !errors.Is(err, ErrAlreadyFired) {
			t.Errorf("repeat FireShot(%d) = %v, expected ErrAlreadyFired", index, err)
		}
		if b.Cells() != before {
			t.Errorf("board changed after repeat shot at %d", index)
		}
		if b.Remaining(Destroyer) != remaining {
			t.Errorf("Remaining changed after repeat shot at %d", index)
		}
	}
}

func TestFireShotOutOfRange(t *testing.T) {
	b := NewBoard()
	for _, index := range []int{-1, 100, 1000} {
		if _, err := b.FireShot(index); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("FireShot(%d) = %v, expected ErrOutOfRange", index, err)
		}
		if _, err := b.CellAt(index); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CellAt(%d) = %v, expected ErrOutOfRange", index, err)
		}
	}
}

func TestHasLost(t *testing.T) {
	b := NewBoard()
	if b.HasLost() {
		t.Fatal("empty board should not count as lost")
	}

	// Sinking a partial fleet is never a loss.
	if err := b.PlaceShip(0, Right, Destroyer); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}
	b.FireShot(0)
	b.FireShot(1)
	if !b.IsShipSunk(Destroyer) {
		t.Fatal("Destroyer should be sunk")
	}
	if b.HasLost() {
		t.Error("HasLost() with four ships never placed")
	}

	placements := []struct {
		start int
		kind  ShipKind
	}{
		{10, Submarine},
		{20, Cruiser},
		{30, Battleship},
		{40, AircraftCarrier},
	}
	for _, p := range placements {
		if err := b.PlaceShip(p.start, Right, p.kind); err != nil {
			t.Fatalf("PlaceShip(%s) failed: %v", p.kind, err)
		}
	}

	for _, p := range placements {
		for i := 0; i < p.kind.Length(); i++ {
			if b.HasLost() {
				t.Fatalf("HasLost() before %s was sunk", p.kind)
			}
			if _, err := b.FireShot(p.start + i); err != nil {
				t.Fatalf("FireShot() failed: %v", err)
			}
		}
	}
	if !b.HasLost() {
		t.Error("HasLost() = false with every ship sunk")
	}
}
