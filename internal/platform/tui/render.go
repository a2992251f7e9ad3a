package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Board layout, in screen cells. Each board is boxed, with a header row of
// column numbers and a column of row letters.
const (
	labelWidth  = 3
	cellWidth   = 2
	gridWidth   = labelWidth + battleship.BoardSize*cellWidth
	boardWidth  = gridWidth + 2
	boardHeight = battleship.BoardSize + 3
	boardGap    = 4
	layoutWidth = boardWidth*2 + boardGap
)

// boardView describes how one board is drawn.
type boardView struct {
	title   string
	reveal  bool // Show unhit ships
	cursor  int  // -1 hides the cursor
	preview map[int]bool
	valid   bool // Preview fits
}

// cellGlyph returns the glyph and color for a board cell.
func cellGlyph(snap battleship.Snapshot, owner battleship.Player, cell battleship.Cell, reveal bool) (rune, core.Color) {
	switch cell.State {
	case battleship.CellHit:
		if snap.IsSunk(owner, cell.Ship) {
			return '#', core.ColorBrightRed
		}
		return 'X', core.ColorRed
	case battleship.CellMiss:
		return 'o', core.ColorBlue
	case battleship.CellOccupied:
		if reveal {
			return '■', core.ColorWhite
		}
	}
	return '·', core.ColorGray
}

// drawBoard draws owner's board with its top-left corner at (x, y).
func drawBoard(s *core.Screen, x, y int, snap battleship.Snapshot, owner battleship.Player, v boardView) {
	s.DrawBox(core.NewRect(x, y, boardWidth, boardHeight), core.ColorGray)
	if v.title != "" {
		s.DrawTextColored(x+2, y, " "+v.title+" ", core.ColorBrightCyan)
	}

	ox, oy := x+1, y+1
	for c := 0; c < battleship.BoardSize; c++ {
		s.DrawTextColored(ox+labelWidth+c*cellWidth, oy, fmt.Sprintf("%d", c+1), core.ColorGray)
	}

	for r := 0; r < battleship.BoardSize; r++ {
		row := oy + 1 + r
		s.SetColored(ox+1, row, rune('A'+r), core.ColorGray)

		for c := 0; c < battleship.BoardSize; c++ {
			index := battleship.Coord{Row: r, Col: c}.Index()
			glyph, color := cellGlyph(snap, owner, snap.CellAt(owner, index), v.reveal)

			if v.preview[index] {
				glyph = '▒'
				color = core.ColorGreen
				if !v.valid {
					color = core.ColorRed
				}
			}
			if index == v.cursor {
				if glyph == '·' {
					glyph = '+'
				}
				color = core.ColorBrightYellow
			}
			s.SetColored(ox+labelWidth+c*cellWidth, row, glyph, color)
		}
	}
}

// drawFleet lists owner's ships at (x, y). Without reveal only sunk ships
// are distinguished, matching what the opponent can know.
func drawFleet(s *core.Screen, x, y int, snap battleship.Snapshot, owner battleship.Player, reveal bool, selected battleship.ShipKind, placing bool) {
	for i, kind := range battleship.AllShips {
		row := y + i
		marker := "  "
		color := core.ColorWhite

		var status string
		switch {
		case placing:
			status = "-"
			if snap.IsPlaced(owner, kind) {
				status = "placed"
				color = core.ColorGreen
			} else if kind == selected {
				marker = "> "
				color = core.ColorBrightYellow
			}
		case snap.IsSunk(owner, kind):
			status = "sunk"
			color = core.ColorRed
		case reveal:
			status = fmt.Sprintf("%d/%d", snap.RemainingOf(owner, kind), kind.Length())
		default:
			status = "afloat"
		}

		s.DrawTextColored(x, row, fmt.Sprintf("%s%-16s %s", marker, kind.String(), status), color)
	}
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
