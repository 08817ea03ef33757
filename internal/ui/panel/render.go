// Package panel renders review results with verdict colors.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docreview/internal/review"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	colorCodes = map[review.Color]lipgloss.Color{
		review.ColorGreen: lipgloss.Color("42"),
		review.ColorRed:   lipgloss.Color("196"),
		review.ColorGray:  lipgloss.Color("244"),
	}
)

// Style returns the foreground style for a verdict color.
func Style(color review.Color) lipgloss.Style {
	code, ok := colorCodes[color]
	if !ok {
		code = colorCodes[review.ColorGray]
	}
	return lipgloss.NewStyle().Foreground(code)
}

// Render lays results out as the results panel shows them: one block per
// guideline, the answer drawn in the verdict color.
func Render(results []review.Result, noColor bool) string {
	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = renderBlock(result, noColor)
	}
	return strings.Join(blocks, "\n")
}

func renderBlock(result review.Result, noColor bool) string {
	var builder strings.Builder
	builder.WriteString(label("Guideline:", noColor) + " " + result.Guideline + "\n")
	builder.WriteString(label("Result:", noColor) + " " + result.Analysis + "\n")
	answer := string(result.Verdict)
	if !noColor {
		answer = Style(result.Color).Bold(true).Render(answer)
	}
	builder.WriteString(label("Answer:", noColor) + " " + answer + "\n")
	return builder.String()
}

func label(text string, noColor bool) string {
	if noColor {
		return text
	}
	return labelStyle.Render(text)
}
