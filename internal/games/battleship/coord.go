package battleship

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a row/column position on a board.
type Coord struct {
	Row, Col int
}

// CoordOf converts a flat index to a coordinate.
func CoordOf(index int) Coord {
	return Coord{Row: index / BoardSize, Col: index % BoardSize}
}

// Index converts the coordinate back to a flat index, or -1 when off the board.
func (c Coord) Index() int {
	if c.Row < 0 || c.Row >= BoardSize || c.Col < 0 || c.Col >= BoardSize {
		return -1
	}
	return c.Row*BoardSize + c.Col
}

// FormatCoord renders an index in board notation: row letter A-J then column 1-10.
func FormatCoord(index int) string {
	if !InBounds(index) {
		return "??"
	}
	c := CoordOf(index)
	return fmt.Sprintf("%c%d", 'A'+c.Row, c.Col+1)
}

// ParseCoord parses board notation such as "c5" or "J10" into an index.
func ParseCoord(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return -1, fmt.Errorf("%w: %q is not a coordinate", ErrOutOfRange, s)
	}

	row := int(s[0]) - 'A'
	if row < 0 || row >= BoardSize {
		return -1, fmt.Errorf("%w: row %q", ErrOutOfRange, s[:1])
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil || col < 1 || col > BoardSize {
		return -1, fmt.Errorf("%w: column %q", ErrOutOfRange, s[1:])
	}

	return Coord{Row: row, Col: col - 1}.Index(), nil
}

func rowLetter(index int) byte {
	return byte('A' + index/BoardSize)
}
