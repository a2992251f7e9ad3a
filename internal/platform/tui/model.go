// Package tui provides the Bubble Tea front end for battleship: a hot-seat
// match model, the match history browser, and SSH hosting via Wish.
package tui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/multiplayer"
)

// Minimum terminal size for the two-board layout.
const (
	minWidth  = layoutWidth + 2
	minHeight = screenRows + 2
)

// Screen rows used by the layout.
const (
	titleRow   = 0
	statusRow  = 1
	boardsRow  = 3
	fleetRow   = boardsRow + boardHeight + 1
	messageRow = fleetRow + len(battleship.AllShips) + 1
	screenRows = messageRow + 1
)

// screenMode is what the model is currently showing.
type screenMode int

const (
	modePlacing screenMode = iota
	modeCombat
	modeHandover // Boards hidden until the next player is ready
	modeGameOver
)

// ModelConfig configures a hot-seat model.
type ModelConfig struct {
	Host     string // Recorded with match results
	Seed     int64  // Random fleet seed; 0 picks one per match
	Handover bool   // Hide boards between turns
	Width    int
	Height   int
}

// Model is the Bubble Tea model for one hot-seat match at a time.
type Model struct {
	manager *multiplayer.Manager
	match   *multiplayer.Match
	current *matchRef
	config  ModelConfig

	screen *core.Screen
	keys   GameKeyMap
	help   help.Model
	width  int
	height int

	snap     battleship.Snapshot
	handover bool // Waiting for the next player
	cursors  [2]int
	ship     battleship.ShipKind
	dir      battleship.Direction

	message      string
	messageColor core.Color
	quitting     bool
}

// NewModel creates a model and starts its first match on manager.
func NewModel(manager *multiplayer.Manager, cfg ModelConfig) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		manager: manager,
		current: &matchRef{},
		config:  cfg,
		screen:  core.NewScreen(cfg.Width, screenHeight(cfg.Height)),
		keys:    DefaultGameKeyMap(),
		help:    h,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.startMatch()
	return m
}

func screenHeight(h int) int {
	return max(h-2, 0)
}

// startMatch replaces the current match with a fresh one.
func (m *Model) startMatch() {
	m.match = m.manager.Create(m.config.Host, m.config.Seed)
	m.current.set(m.match)
	m.snap = m.match.Snapshot()
	m.handover = false
	center := battleship.Coord{Row: battleship.BoardSize / 2, Col: battleship.BoardSize / 2}.Index()
	m.cursors = [2]int{center, center}
	m.ship = battleship.AircraftCarrier
	m.dir = battleship.Right
	m.setMessage("Player 1, place your fleet", core.ColorWhite)
}

// matchRef tracks the live match across copies of the model.
type matchRef struct {
	mu    sync.Mutex
	match *multiplayer.Match
}

func (r *matchRef) set(match *multiplayer.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.match = match
}

func (r *matchRef) get() *multiplayer.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.match
}

// AbandonOnDone abandons the current match once done is closed, for
// sessions that end without the player quitting.
func (m Model) AbandonOnDone(done <-chan struct{}) {
	go func() {
		<-done
		if match := m.current.get(); match != nil {
			match.Close(multiplayer.MatchEndReasonAbandoned)
		}
	}()
}

// Match returns the match currently being played.
func (m Model) Match() *multiplayer.Match {
	return m.match
}

func (m Model) mode() screenMode {
	switch {
	case m.snap.Phase == battleship.PhaseGameOver:
		return modeGameOver
	case m.handover:
		return modeHandover
	case m.snap.Phase == battleship.PhaseCombat:
		return modeCombat
	default:
		return modePlacing
	}
}

// active returns the player whose move it is.
func (m Model) active() battleship.Player {
	return m.snap.Turn
}

func (m *Model) setMessage(text string, color core.Color) {
	m.message = text
	m.messageColor = color
}

// Init starts the model. Battleship is turn based, so there is no tick loop.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for the current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.mode()
	keys := m.keys.modeKeys(mode)

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.match.Close(multiplayer.MatchEndReasonAbandoned)
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch mode {
	case modeHandover:
		if key.Matches(msg, keys.Continue) {
			m.handover = false
			m.setMessage(m.turnPrompt(), core.ColorWhite)
		}

	case modeGameOver:
		if key.Matches(msg, keys.NewGame) {
			m.startMatch()
		}

	case modePlacing:
		if m.moveCursor(msg, keys) {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Rotate):
			m.dir = m.dir.Rotate()
		case key.Matches(msg, keys.NextShip):
			m.ship = m.nextUnplaced(m.ship, 1)
		case key.Matches(msg, keys.PrevShip):
			m.ship = m.nextUnplaced(m.ship, -1)
		case key.Matches(msg, keys.Act):
			m.place()
		case key.Matches(msg, keys.Random):
			m.placeRandom()
		}

	case modeCombat:
		if m.moveCursor(msg, keys) {
			return m, nil
		}
		if key.Matches(msg, keys.Act) {
			m.fire()
		}
	}

	return m, nil
}

// moveCursor moves the active player's cursor, clamped to the board.
func (m *Model) moveCursor(msg tea.KeyMsg, keys GameKeyMap) bool {
	var dr, dc int
	switch {
	case key.Matches(msg, keys.Up):
		dr = -1
	case key.Matches(msg, keys.Down):
		dr = 1
	case key.Matches(msg, keys.Left):
		dc = -1
	case key.Matches(msg, keys.Right):
		dc = 1
	default:
		return false
	}

	p := m.active()
	c := battleship.CoordOf(m.cursors[p-1])
	c.Row = core.Clamp(c.Row+dr, 0, battleship.BoardSize-1)
	c.Col = core.Clamp(c.Col+dc, 0, battleship.BoardSize-1)
	m.cursors[p-1] = c.Index()
	return true
}

// nextUnplaced steps from kind in direction step to the next ship the
// active player has not placed yet. Returns kind when all are placed.
func (m Model) nextUnplaced(kind battleship.ShipKind, step int) battleship.ShipKind {
	n := len(battleship.AllShips)
	p := m.active()
	for i := 1; i <= n; i++ {
		next := battleship.AllShips[((int(kind)+step*i)%n+n)%n]
		if !m.snap.IsPlaced(p, next) {
			return next
		}
	}
	return kind
}

func (m *Model) place() {
	p := m.active()
	err := m.match.PlaceShip(p, m.cursors[p-1], m.dir, m.ship)
	if err != nil {
		m.setMessage(describeError(err), core.ColorRed)
		return
	}
	m.refresh(fmt.Sprintf("%s placed %s at %s", p, m.ship, battleship.FormatCoord(m.cursors[p-1])))
}

func (m *Model) placeRandom() {
	p := m.active()
	if err := m.match.PlaceRandomFleet(p); err != nil {
		m.setMessage(describeError(err), core.ColorRed)
		return
	}
	m.refresh(fmt.Sprintf("%s placed a random fleet", p))
}

func (m *Model) fire() {
	p := m.active()
	target := p.Opponent()
	index := m.cursors[p-1]

	res, err := m.match.FireShot(target, index)
	if err != nil {
		m.setMessage(describeError(err), core.ColorRed)
		return
	}
	m.refresh(fmt.Sprintf("%s fires at %s: %s", p, battleship.FormatCoord(index), describeShot(res)))
}

// refresh re-reads the match after a successful move and decides whether
// the next player needs a handover screen.
func (m *Model) refresh(result string) {
	prev := m.snap
	m.snap = m.match.Snapshot()

	if m.snap.Phase == battleship.PhaseGameOver {
		m.setMessage(fmt.Sprintf("%s. %s wins!", result, m.snap.Winner), core.ColorBrightYellow)
		return
	}

	if m.snap.Phase != prev.Phase || m.snap.Turn != prev.Turn {
		m.ship = battleship.AircraftCarrier
		if m.config.Handover {
			m.handover = true
			m.setMessage(result, core.ColorWhite)
			return
		}
		m.setMessage(result+". "+m.turnPrompt(), core.ColorWhite)
		return
	}

	if m.snap.Phase != battleship.PhaseCombat {
		m.ship = m.nextUnplaced(m.ship, 1)
	}
	m.setMessage(result, core.ColorGreen)
}

func (m Model) turnPrompt() string {
	if m.snap.Phase == battleship.PhaseCombat {
		return fmt.Sprintf("%s, choose a target", m.active())
	}
	return fmt.Sprintf("%s, place your fleet", m.active())
}

// describeError turns a rejected move into a status line.
func describeError(err error) string {
	switch {
	case errors.Is(err, battleship.ErrInvalidPlacement):
		return "Ship does not fit there"
	case errors.Is(err, battleship.ErrAlreadyFired):
		return "Already fired at that cell"
	case errors.Is(err, battleship.ErrOutOfRange):
		return "Off the board"
	case errors.Is(err, battleship.ErrWrongTurn):
		return "Not your turn"
	case errors.Is(err, battleship.ErrWrongPhase):
		return "Not allowed right now"
	case errors.Is(err, battleship.ErrSessionEnded):
		return "The match is over"
	default:
		return err.Error()
	}
}

func describeShot(res battleship.ShotResult) string {
	switch {
	case res.Outcome == battleship.OutcomeMiss:
		return "miss"
	case res.Sunk:
		return "sunk the " + res.Ship.String()
	default:
		return "hit"
	}
}

// preview returns the cells the selected ship would cover and whether
// they form a legal placement.
func (m Model) preview() (map[int]bool, bool) {
	p := m.active()
	if m.snap.IsPlaced(p, m.ship) {
		return nil, false
	}

	cells := make(map[int]bool, m.ship.Length())
	index := m.cursors[p-1]
	valid := true
	for i := 0; i < m.ship.Length(); i++ {
		if !battleship.InBounds(index) {
			valid = false
			break
		}
		cells[index] = true
		if m.snap.CellAt(p, index).HasShip() {
			valid = false
		}
		if i < m.ship.Length()-1 && leavesRow(index, m.dir) {
			valid = false
			break
		}
		index += m.dir.Step()
	}
	return cells, valid
}

// leavesRow reports whether stepping from index in dir wraps to another row.
func leavesRow(index int, dir battleship.Direction) bool {
	col := index % battleship.BoardSize
	switch dir {
	case battleship.Left:
		return col == 0
	case battleship.Right:
		return col == battleship.BoardSize-1
	}
	return false
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width < minWidth || m.height < minHeight {
		return centerText(fmt.Sprintf("Terminal too small: need %dx%d", minWidth, minHeight), m.width)
	}

	m.screen.Clear()
	m.draw(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.modeKeys(m.mode())))
}

// draw renders the match into s.
func (m Model) draw(s *core.Screen) {
	s.DrawTextCentered(titleRow, "B A T T L E S H I P", core.ColorBrightCyan)

	left := (s.Width() - layoutWidth) / 2
	right := left + boardWidth + boardGap

	mode := m.mode()
	switch mode {
	case modeHandover:
		s.DrawTextCentered(boardsRow+4, fmt.Sprintf("Pass the keyboard to %s", m.active()), core.ColorBrightYellow)
		s.DrawTextCentered(boardsRow+6, "Press enter when ready", core.ColorWhite)

	case modeGameOver:
		s.DrawTextCentered(statusRow, fmt.Sprintf("%s wins!", m.snap.Winner), core.ColorBrightYellow)
		for i, p := range []battleship.Player{battleship.Player1, battleship.Player2} {
			x := left + i*(boardWidth+boardGap)
			drawBoard(s, x, boardsRow, m.snap, p, boardView{title: p.String(), reveal: true, cursor: -1})
			drawFleet(s, x, fleetRow, m.snap, p, true, 0, false)
		}

	case modePlacing:
		p := m.active()
		s.DrawTextCentered(statusRow, m.snap.Phase.String()+"  "+m.dir.String(), core.ColorWhite)
		cells, valid := m.preview()
		drawBoard(s, left, boardsRow, m.snap, p, boardView{
			title: "Your fleet", reveal: true, cursor: m.cursors[p-1], preview: cells, valid: valid,
		})
		drawBoard(s, right, boardsRow, m.snap, p.Opponent(), boardView{title: "Enemy waters", cursor: -1})
		drawFleet(s, left, fleetRow, m.snap, p, true, m.ship, true)

	case modeCombat:
		p := m.active()
		st := m.snap.StatsOf(p)
		s.DrawTextCentered(statusRow, fmt.Sprintf("%s to fire  shots %d  hits %d", p, st.Shots, st.Hits), core.ColorWhite)
		drawBoard(s, left, boardsRow, m.snap, p, boardView{title: "Your fleet", reveal: true, cursor: -1})
		drawBoard(s, right, boardsRow, m.snap, p.Opponent(), boardView{title: "Enemy waters", cursor: m.cursors[p-1]})
		drawFleet(s, left, fleetRow, m.snap, p, true, 0, false)
		drawFleet(s, right, fleetRow, m.snap, p.Opponent(), false, 0, false)
	}

	s.DrawTextCentered(messageRow, m.message, m.messageColor)
}

// Run starts the Bubble Tea program for local hot-seat play.
func Run(manager *multiplayer.Manager, cfg ModelConfig) error {
	p := tea.NewProgram(
		NewModel(manager, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
