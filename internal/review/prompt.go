package review

import (
	"strings"

	"docreview/internal/guideline"
)

// ExpectationSentence renders the expectation line of the prompt.
func ExpectationSentence(g guideline.Guideline) string {
	subject := strings.ToLower(g.Title)
	switch g.Expectation {
	case guideline.Present:
		return "The article should have " + subject + "."
	case guideline.Absent:
		return "The article should not have " + subject + "."
	case guideline.NotApplicable:
		return "The relevance of " + subject + " does not apply to this article."
	default:
		return "No specific expectation defined."
	}
}

// BuildPrompt composes the analysis request for one guideline.
func BuildPrompt(g guideline.Guideline, article string) string {
	var builder strings.Builder
	builder.WriteString("Analyze this article based on the following guideline:\n\n")
	builder.WriteString("Guideline: ")
	builder.WriteString(g.Title)
	builder.WriteString(".\n")
	builder.WriteString("Expectation: ")
	builder.WriteString(ExpectationSentence(g))
	builder.WriteString("\n\nArticle:\n")
	builder.WriteString(article)
	builder.WriteString("\n\nAnalysis:")
	return builder.String()
}
