package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// GameKeyMap defines the key bindings for a match.
type GameKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Rotate   key.Binding
	NextShip key.Binding
	PrevShip key.Binding
	Act      key.Binding // Place during placement, fire during combat
	Random   key.Binding
	Continue key.Binding
	NewGame  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Act, k.Rotate, k.NextShip, k.Random, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Act, k.Rotate, k.NextShip, k.PrevShip, k.Random},
		{k.Continue, k.NewGame, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "move right"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate"),
		),
		NextShip: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next ship"),
		),
		PrevShip: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev ship"),
		),
		Act: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place/fire"),
		),
		Random: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "random fleet"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// modeKeys enables only the bindings that do something in the given mode,
// so the help view lists exactly the usable keys.
func (k GameKeyMap) modeKeys(mode screenMode) GameKeyMap {
	placing := mode == modePlacing
	playing := mode == modePlacing || mode == modeCombat

	k.Up.SetEnabled(playing)
	k.Down.SetEnabled(playing)
	k.Left.SetEnabled(playing)
	k.Right.SetEnabled(playing)
	k.Act.SetEnabled(playing)
	k.Rotate.SetEnabled(placing)
	k.NextShip.SetEnabled(placing)
	k.PrevShip.SetEnabled(placing)
	k.Random.SetEnabled(placing)
	k.Continue.SetEnabled(mode == modeHandover)
	k.NewGame.SetEnabled(mode == modeGameOver)
	return k
}
