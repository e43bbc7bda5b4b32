package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danweiss/femstage/internal/core/ledger"
)

// Model is the staged-run browser.
type Model struct {
	db     *ledger.DB
	list   list.Model
	width  int
	height int
	err    error
	status string

	runs []ledger.Run

	// ChosenPath is set when the user picks a run with enter; the CLI
	// prints it after the program exits.
	ChosenPath string
}

type runsLoadedMsg struct {
	runs []ledger.Run
}

type errMsg struct {
	err error
}

func New(db *ledger.DB) Model {
	return Model{db: db}
}

func (m Model) Init() tea.Cmd {
	return loadRuns(m.db)
}

func loadRuns(db *ledger.DB) tea.Cmd {
	return func() tea.Msg {
		runs, err := db.List("")
		if err != nil {
			return errMsg{err}
		}
		return runsLoadedMsg{runs}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if len(m.runs) > 0 {
			m.list.SetSize(msg.Width, msg.Height-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if selected, ok := m.list.SelectedItem().(runItem); ok {
				m.ChosenPath = selected.run.Path
				return m, tea.Quit
			}
			return m, nil

		case "c":
			if selected, ok := m.list.SelectedItem().(runItem); ok {
				if err := clipboard.WriteAll(selected.run.Path); err != nil {
					m.status = "Clipboard unavailable"
				} else {
					m.status = "Path copied to clipboard"
				}
			}
			return m, nil

		case "r":
			m.status = ""
			return m, loadRuns(m.db)
		}

		if len(m.runs) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case runsLoadedMsg:
		m.runs = msg.runs
		m.list = createRunList(msg.runs, m.width, m.height)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}
	if len(m.runs) == 0 {
		return "No staging runs cataloged. Run 'femstage resolve' first.\n\n" + helpText
	}

	footer := helpText
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return m.list.View() + "\n" + footer
}

const helpText = "↑/k up • ↓/j down • enter pick • c copy • r reload • q quit"
