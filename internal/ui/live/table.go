package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	idColumnWidth     = 4
	statusColumnWidth = 18
	timeColumnWidth   = 8
	minTitleWidth     = 20
)

func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives the remaining width to the guideline column.
func columnsForWidth(width int) []table.Column {
	titleWidth := width - idColumnWidth - statusColumnWidth - timeColumnWidth - 8
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}
	return []table.Column{
		{Title: "#", Width: idColumnWidth},
		{Title: "Guideline", Width: titleWidth},
		{Title: "Status", Width: statusColumnWidth},
		{Title: "Time", Width: timeColumnWidth},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, titleWidth int, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatTitle(row.Title, titleWidth),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
		})
	}
	return rows
}
