package panel

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docreview/internal/report"
)

type keyMap struct {
	Quit key.Binding
	Top  key.Binding
	End  key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "close")),
	Top:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	End:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
}

// Model is a scrollable results panel.
type Model struct {
	viewport viewport.Model
	title    string
	content  string
	noColor  bool
	ready    bool
}

// NewModel builds a panel for a finished run.
func NewModel(run report.Run, noColor bool) Model {
	return Model{
		title:   titleFor(run),
		content: Render(run.Results, noColor),
		noColor: noColor,
	}
}

func titleFor(run report.Run) string {
	summary := run.Summary
	return fmt.Sprintf("Results %s  Yes %d  No %d  N/A %d  Unknown %d",
		run.RunID, summary.Passed, summary.Failed, summary.NotApplicable, summary.Unknown)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(typed.Height-lipgloss.Height(m.headerView())-lipgloss.Height(m.footerView()), 1)
		if !m.ready {
			m.viewport = viewport.New(typed.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = typed.Width
			m.viewport.Height = height
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, keys.Quit):
			return m, tea.Quit
		case key.Matches(typed, keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(typed, keys.End):
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading results..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) headerView() string {
	if m.noColor {
		return m.title
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(m.title)
}

func (m Model) footerView() string {
	percent := 100
	if m.ready {
		percent = int(m.viewport.ScrollPercent() * 100)
	}
	help := []string{keys.Quit.Help().Key + " " + keys.Quit.Help().Desc, keys.Top.Help().Key + " " + keys.Top.Help().Desc, keys.End.Help().Key + " " + keys.End.Help().Desc}
	line := fmt.Sprintf("%3d%%  %s", percent, strings.Join(help, " · "))
	if m.noColor {
		return line
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(line)
}

// Show runs the panel until the user closes it.
func Show(run report.Run, input io.Reader, output io.Writer, noColor bool) error {
	options := []tea.ProgramOption{tea.WithOutput(output), tea.WithAltScreen()}
	if input != nil {
		options = append(options, tea.WithInput(input))
	}
	if _, err := tea.NewProgram(NewModel(run, noColor), options...).Run(); err != nil {
		return fmt.Errorf("results panel: %w", err)
	}
	return nil
}

