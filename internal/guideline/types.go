package guideline

import (
	"strings"

	"golang.org/x/text/cases"
)

// Expectation states whether a guideline's subject is expected in the article.
type Expectation int

const (
	// Unspecified is used for any exist value that is not recognized.
	Unspecified Expectation = iota
	// Present expects the subject to appear in the article.
	Present
	// Absent expects the subject not to appear in the article.
	Absent
	// NotApplicable marks the subject as irrelevant to the article.
	NotApplicable
)

// Recognized exist column values.
const (
	ExistYes         = "yes"
	ExistNo          = "no"
	ExistNotRelevant = "no relevant"
)

var folder = cases.Fold()

// FoldExist trims and case-folds a raw exist cell.
func FoldExist(raw string) string {
	return folder.String(strings.TrimSpace(raw))
}

// ParseExpectation maps a raw exist value onto an Expectation.
func ParseExpectation(raw string) Expectation {
	switch FoldExist(raw) {
	case ExistYes:
		return Present
	case ExistNo:
		return Absent
	case ExistNotRelevant:
		return NotApplicable
	default:
		return Unspecified
	}
}

// String returns the display name of the expectation.
func (e Expectation) String() string {
	switch e {
	case Present:
		return "present"
	case Absent:
		return "absent"
	case NotApplicable:
		return "not applicable"
	default:
		return "unspecified"
	}
}

// Guideline is a review criterion paired with its expectation.
type Guideline struct {
	Title       string
	Expectation Expectation
	// Exist is the folded spreadsheet value the expectation was parsed from.
	Exist string
}

// Label renders the guideline the way the selection list shows it.
func (g Guideline) Label() string {
	return g.Title + " (" + g.Exist + ")"
}
