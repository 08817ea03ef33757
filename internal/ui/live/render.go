package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Review " + state.RunID
	if state.Document != "" {
		line += " | " + state.Document
	}
	if state.Model != "" {
		line += " | " + state.Model
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Done: " + fmtInt(counts.Done) + "/" + fmtInt(state.Total) +
		" Yes: " + fmtInt(counts.Yes) +
		" No: " + fmtInt(counts.No) +
		" N/A: " + fmtInt(counts.NotApplicable) +
		" Unknown: " + fmtInt(counts.Unknown) +
		" Errors: " + fmtInt(counts.Failed)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.Finished {
		return stylize("Review finished", noColor, lipgloss.Color("42"))
	}
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
