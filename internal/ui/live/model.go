package live

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultTick = 200 * time.Millisecond

var interruptKey = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "stop"))

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
	Model        string
	// OnInterrupt runs when the user presses ctrl+c.
	OnInterrupt func()
}

// Model is the Bubble Tea progress view for one review run.
type Model struct {
	opts   Options
	state  State
	table  table.Model
	events <-chan Event
	now    time.Time
	// width of the guideline column, tracked for truncation.
	titleWidth int
}

// EventMsg delivers one review event to the model.
type EventMsg struct {
	Event Event
}

type tickMsg time.Time

// NewModel builds a model that drains events until the channel closes.
func NewModel(events <-chan Event, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTick
	}
	columns := defaultColumns()
	grid := table.New(table.WithColumns(columns), table.WithFocused(false))
	grid.SetStyles(tableStyles(opts.NoColor))
	return Model{
		opts:       opts,
		state:      State{Model: opts.Model},
		table:      grid,
		events:     events,
		now:        time.Now(),
		titleWidth: columns[1].Width,
	}
}

// State returns a snapshot of the progress state.
func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.next(), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.apply(msg.Event)
		return m, m.next()
	case tickMsg:
		m.now = time.Time(msg)
		m.refresh()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if !key.Matches(msg, interruptKey) {
			return m, nil
		}
		if m.opts.OnInterrupt != nil {
			m.opts.OnInterrupt()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.now, m.opts.NoColor),
		renderSummary(m.state, m.opts.NoColor),
		m.table.View(),
		renderFooter(m.state, m.opts.NoColor),
	)
}

func (m *Model) resize(width, height int) {
	columns := columnsForWidth(width)
	m.titleWidth = columns[1].Width
	m.table.SetColumns(columns)
	m.table.SetWidth(width)
	// header, summary and footer take four lines.
	m.table.SetHeight(max(height-4, 1))
	m.refresh()
}

func (m *Model) refresh() {
	m.table.SetRows(rowsForState(m.state, m.now, m.titleWidth, m.opts.NoColor))
}

func (m *Model) apply(event Event) {
	switch event.Kind {
	case EventRunStart:
		started := m.state.StartedAt
		if started.IsZero() {
			started = time.Now()
		}
		m.state = State{
			Model:     m.state.Model,
			RunID:     event.RunID,
			Document:  event.Document,
			Total:     event.Total,
			StartedAt: started,
		}
	case EventGuideline:
		m.state = Reduce(m.state, event.Guideline)
	case EventRunEnd:
		m.state.Finished = true
		m.state.Summary = event.Summary
	}
	m.refresh()
}

// next waits for the following event and quits once the stream closes.
func (m Model) next() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
