package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-battleship/internal/storage"
)

const maxHistory = 100 // Max matches to load

// HistorySource provides recorded matches. *storage.Store implements it.
type HistorySource interface {
	RecentMatches(host string, limit int) ([]storage.MatchRecord, error)
	Stats() (*storage.Stats, error)
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing finished matches.
type HistoryModel struct {
	source  HistorySource
	host    string // Empty shows every host
	records []storage.MatchRecord
	stats   *storage.Stats
	err     error
	table   table.Model
	help    help.Model
	keys    HistoryKeyMap
	width   int
	height  int
}

// NewHistoryModel creates a history model and loads the first page.
func NewHistoryModel(source HistorySource, host string, width, height int) HistoryModel {
	m := HistoryModel{
		source: source,
		host:   host,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// historyColumns are the table columns, in display order.
var historyColumns = []table.Column{
	{Title: "Date", Width: 12},
	{Title: "Host", Width: 10},
	{Title: "Result", Width: 10},
	{Title: "P1 hits", Width: 8},
	{Title: "P2 hits", Width: 8},
	{Title: "Time", Width: 8},
}

func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads matches and stats from the source.
func (m *HistoryModel) load() {
	m.err = nil
	if m.source == nil {
		m.records = nil
		m.stats = nil
		m.table.SetRows(nil)
		return
	}

	records, err := m.source.RecentMatches(m.host, maxHistory)
	if err != nil {
		m.err = err
		records = nil
	}
	m.records = records

	stats, err := m.source.Stats()
	if err != nil && m.err == nil {
		m.err = err
	}
	m.stats = stats

	m.table.SetRows(historyRows(m.records))
	m.table.GotoTop()
}

// historyRows formats records as table rows.
func historyRows(records []storage.MatchRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Host,
			resultLabel(r),
			fmt.Sprintf("%d/%d", r.Hits1, r.Shots1),
			fmt.Sprintf("%d/%d", r.Hits2, r.Shots2),
			(time.Duration(r.Duration) * time.Second).String(),
		}
	}
	return rows
}

func resultLabel(r storage.MatchRecord) string {
	if r.Winner == 1 || r.Winner == 2 {
		return fmt.Sprintf("P%d won", r.Winner)
	}
	return r.EndReason
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.records))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "MATCH HISTORY"
	if m.host != "" {
		title += " - " + m.host
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.stats != nil {
		summary := fmt.Sprintf("%d matches  %d completed  P1 %d  P2 %d  %d unfinished",
			m.stats.Matches, m.stats.Completed, m.stats.WinsP1, m.stats.WinsP2, m.stats.Abandoned)
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render("Could not load history: " + m.err.Error()))
	case len(m.records) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No matches recorded yet.\nFinish a game to see it here!")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunHistory runs the history browser.
func RunHistory(source HistorySource, host string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, host, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
