package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"docreview/internal/report"
	"docreview/internal/review"
)

const verbosePrefix = "[verbose]"

// lineTone selects the ANSI color of a verbose line.
type lineTone string

const (
	tonePlain lineTone = ""
	toneRun   lineTone = "\x1b[1;34m"
	toneOK    lineTone = "\x1b[1;32m"
	toneError lineTone = "\x1b[1;31m"

	ansiPrefix = "\x1b[2;90m"
	ansiReset  = "\x1b[0m"
)

// VerboseObserver prints run progress as [verbose] lines.
type VerboseObserver struct {
	writer io.Writer
	color  bool
}

// NewVerboseObserver returns nil when writer is nil. Colors are used only on
// a terminal that has not opted out through NO_COLOR, CLICOLOR=0 or TERM=dumb.
func NewVerboseObserver(writer io.Writer, noColor bool) *VerboseObserver {
	if writer == nil {
		return nil
	}
	return &VerboseObserver{writer: writer, color: !noColor && shouldUseStyling(writer)}
}

func (v *VerboseObserver) OnRunStart(runID string, document string, total int) {
	v.printf(toneRun, "run=%s document=%s guidelines=%d", runID, document, total)
}

func (v *VerboseObserver) OnGuidelineEvent(event review.Event) {
	position := fmt.Sprintf("%d/%d", event.Index+1, event.Total)
	switch event.Type {
	case review.EventRunning:
		v.printf(tonePlain, "guideline %s %q running", position, event.Guideline)
	case review.EventDone:
		v.printf(toneOK, "guideline %s %q answer=%s wall=%s",
			position, event.Guideline, event.Verdict, event.WallTime.Round(time.Millisecond))
	case review.EventFailed:
		v.printf(toneError, "guideline %s %q failed kind=%s error=%s",
			position, event.Guideline, event.Failure, event.Error)
	}
}

func (v *VerboseObserver) OnRunEnd(run report.Run) {
	s := run.Summary
	v.printf(toneOK, "run=%s yes=%d no=%d n/a=%d unknown=%d errors=%d tokens=%d",
		run.RunID, s.Passed, s.Failed, s.NotApplicable, s.Unknown, s.Errors, s.TokensTotal)
}

func (v *VerboseObserver) printf(tone lineTone, format string, args ...any) {
	if v == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	prefix := verbosePrefix
	if v.color {
		prefix = ansiPrefix + prefix + ansiReset
		if tone != tonePlain {
			line = string(tone) + line + ansiReset
		}
	}
	fmt.Fprintf(v.writer, "%s %s\n", prefix, line)
}

// shouldUseStyling reports whether ANSI styling suits writer.
func shouldUseStyling(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" || strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	fder, ok := writer.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}
