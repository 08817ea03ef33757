package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"docreview/internal/review"
)

// formatIndex formats a guideline index.
func formatIndex(index int) string {
	return "G" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatTitle truncates guideline text for display.
func formatTitle(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if limit <= 3 || len([]rune(normalized)) <= limit {
		return normalized
	}
	runes := []rune(normalized)
	return string(runes[:limit-3]) + "..."
}

// formatStatus renders the status column for a row.
func formatStatus(row GuidelineRow, noColor bool) string {
	label := statusLabel(row)
	if noColor {
		return label
	}
	return statusStyle(row).Render(label)
}

func statusLabel(row GuidelineRow) string {
	switch row.Status {
	case review.EventDone:
		return string(row.Verdict)
	case review.EventFailed:
		if row.Failure != review.FailureNone {
			return "error (" + string(row.Failure) + ")"
		}
		return "error"
	default:
		return string(row.Status)
	}
}

// statusStyle mirrors the verdict colors of the results panel.
func statusStyle(row GuidelineRow) lipgloss.Style {
	color := lipgloss.Color("246")
	switch row.Status {
	case review.EventRunning:
		color = lipgloss.Color("33")
	case review.EventFailed:
		color = lipgloss.Color("196")
	case review.EventDone:
		switch review.ColorFor(row.Verdict) {
		case review.ColorGreen:
			color = lipgloss.Color("42")
		case review.ColorRed:
			color = lipgloss.Color("196")
		default:
			color = lipgloss.Color("244")
		}
	}
	return lipgloss.NewStyle().Foreground(color)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row GuidelineRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}
