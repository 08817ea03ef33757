package runner

import "errors"

// InputErrorMessage is shown when a review is rejected before evaluation.
const InputErrorMessage = "Input Error: Please make sure both the article and at least one guideline are provided."

var (
	// ErrMissingArticle rejects a review without article text.
	ErrMissingArticle = errors.New("article text is empty")
	// ErrNoGuidelines rejects a review without selected guidelines.
	ErrNoGuidelines = errors.New("no guidelines selected")
)

// IsInputError reports whether err is an upfront input rejection.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingArticle) || errors.Is(err, ErrNoGuidelines)
}
