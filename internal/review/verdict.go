package review

import (
	"strings"

	"docreview/internal/guideline"
)

// Verdict is the compliance classification of one guideline.
type Verdict string

const (
	VerdictYes           Verdict = "Yes"
	VerdictNo            Verdict = "No"
	VerdictNotApplicable Verdict = "N/A"
	VerdictUnknown       Verdict = "Unknown"
)

// Color is the display color attached to a verdict.
type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
	ColorGray  Color = "gray"
)

// complianceToken is searched case-insensitively in the analysis text.
const complianceToken = "yes"

// Classify derives a verdict from the expectation and the analysis text.
// It is a plain substring match: any "yes" anywhere in the text counts.
func Classify(expectation guideline.Expectation, analysis string) Verdict {
	mentionsYes := strings.Contains(strings.ToLower(analysis), complianceToken)
	switch expectation {
	case guideline.Present:
		if mentionsYes {
			return VerdictYes
		}
		return VerdictNo
	case guideline.Absent:
		if mentionsYes {
			return VerdictNo
		}
		return VerdictYes
	case guideline.NotApplicable:
		return VerdictNotApplicable
	default:
		return VerdictUnknown
	}
}

// ColorFor maps a verdict to its display color.
func ColorFor(verdict Verdict) Color {
	switch verdict {
	case VerdictYes:
		return ColorGreen
	case VerdictNo:
		return ColorRed
	default:
		return ColorGray
	}
}
