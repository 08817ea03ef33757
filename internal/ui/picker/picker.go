// Package picker is an interactive checklist for choosing which guidelines to review.
package picker

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docreview/internal/guideline"
)

// ErrAborted is returned when the user leaves the picker without confirming.
var ErrAborted = errors.New("guideline selection aborted")

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Abort     key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "review")),
	Abort:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "cancel")),
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model edits a copy of the selection flags; the set changes only on confirm.
type Model struct {
	items     []guideline.Guideline
	selected  []bool
	cursor    int
	offset    int
	height    int
	noColor   bool
	confirmed bool
	aborted   bool
}

// NewModel starts from the set's current selection.
func NewModel(set *guideline.Set, noColor bool) Model {
	items := set.All()
	selected := make([]bool, len(items))
	for i := range items {
		selected[i] = set.IsSelected(i)
	}
	return Model{items: items, selected: selected, height: 20, noColor: noColor}
}

// Confirmed reports whether the user accepted the selection.
func (m Model) Confirmed() bool { return m.confirmed }

// Aborted reports whether the user cancelled.
func (m Model) Aborted() bool { return m.aborted }

// Apply copies the edited selection onto set.
func (m Model) Apply(set *guideline.Set) {
	for i, selected := range m.selected {
		set.SetSelected(i, selected)
	}
}

// SelectedCount returns the number of checked guidelines.
func (m Model) SelectedCount() int {
	count := 0
	for _, selected := range m.selected {
		if selected {
			count++
		}
	}
	return count
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(typed.Height-4, 1)
		m.scroll()
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(typed, keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(typed, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(typed, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(typed, keys.Toggle):
			if m.cursor < len(m.selected) {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case key.Matches(typed, keys.ToggleAll):
			target := m.SelectedCount() != len(m.selected)
			for i := range m.selected {
				m.selected[i] = target
			}
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m Model) View() string {
	var builder strings.Builder
	builder.WriteString(m.style(cursorStyle, fmt.Sprintf("Select guidelines (%d/%d)", m.SelectedCount(), len(m.items))))
	builder.WriteString("\n\n")
	if len(m.items) == 0 {
		builder.WriteString("No guidelines loaded.\n")
	}
	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}
		box := "[ ]"
		if m.selected[i] {
			box = "[x]"
		}
		line := pointer + box + " " + m.items[i].Label()
		if i == m.cursor {
			line = m.style(cursorStyle, line)
		}
		builder.WriteString(line + "\n")
	}
	builder.WriteString("\n")
	help := []string{}
	for _, binding := range []key.Binding{keys.Toggle, keys.ToggleAll, keys.Confirm, keys.Abort} {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	builder.WriteString(m.style(mutedStyle, strings.Join(help, " · ")))
	return builder.String()
}

func (m Model) style(style lipgloss.Style, text string) string {
	if m.noColor {
		return text
	}
	return style.Render(text)
}

// Run shows the picker and applies the selection to set when confirmed.
func Run(set *guideline.Set, input io.Reader, output io.Writer, noColor bool) error {
	options := []tea.ProgramOption{tea.WithOutput(output)}
	if input != nil {
		options = append(options, tea.WithInput(input))
	}
	final, err := tea.NewProgram(NewModel(set, noColor), options...).Run()
	if err != nil {
		return fmt.Errorf("guideline picker: %w", err)
	}
	model, ok := final.(Model)
	if !ok || !model.Confirmed() {
		return ErrAborted
	}
	model.Apply(set)
	return nil
}
