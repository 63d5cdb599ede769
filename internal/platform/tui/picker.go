package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// PickerKeyMap defines the key bindings for the level picker.
type PickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Play    key.Binding
	Endless key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Endless, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Play, k.Endless, k.Quit},
	}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Endless: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "endless"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Selection is the level and mode chosen in the picker.
type Selection struct {
	LevelID string
	Endless bool
}

// PickerModel is the Bubble Tea model for the level picker.
type PickerModel struct {
	levels    []levels.Level
	stats     map[string]*storage.LevelStats // Simulation stats per level, may be empty
	table     table.Model
	help      help.Model
	keys      PickerKeyMap
	width     int
	height    int
	selection *Selection
	quitting  bool
}

// NewPickerModel creates a level picker. The store is optional; when present
// the best simulated score of each level is shown.
func NewPickerModel(lvls []levels.Level, store *storage.Store, width, height int) PickerModel {
	h := help.New()
	h.ShowAll = false

	m := PickerModel{
		levels: lvls,
		stats:  make(map[string]*storage.LevelStats),
		keys:   DefaultPickerKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	if store != nil {
		if all, err := store.AllLevelStats(); err == nil {
			m.stats = all
		}
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *PickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 18},
		{Title: "Size", Width: 6},
		{Title: "Target", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Sim best", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// updateTableRows fills the table with the levels.
func (m *PickerModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, lvl := range m.levels {
		best := "-"
		if st, ok := m.stats[lvl.ID]; ok && st.Runs > 0 {
			best = fmt.Sprintf("%d", st.BestScore)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			lvl.Title(),
			fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
			fmt.Sprintf("%d", lvl.TargetScore),
			fmt.Sprintf("%d", lvl.Moves),
			best,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play), key.Matches(msg, m.keys.Endless):
			if len(m.levels) == 0 {
				return m, nil
			}
			m.selection = &Selection{
				LevelID: m.levels[m.table.Cursor()].ID,
				Endless: key.Matches(msg, m.keys.Endless),
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting || m.selection != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("MATCH THREE - CHOOSE A LEVEL", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(centerText(tableStyle.Render(emptyStyle.Render("No levels found.")), m.width))
	} else {
		b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selection returns the chosen level, or false if the user quit.
func (m PickerModel) Selection() (Selection, bool) {
	if m.selection == nil {
		return Selection{}, false
	}
	return *m.selection, true
}

// centerText centers each line of text horizontally within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunPicker runs the level picker.
// Returns false if the user quit without choosing.
func RunPicker(lvls []levels.Level, store *storage.Store, width, height int) (Selection, bool, error) {
	model := NewPickerModel(lvls, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return Selection{}, false, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return Selection{}, false, nil
	}
	sel, chosen := m.Selection()
	return sel, chosen, nil
}
