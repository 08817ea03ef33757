package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docreview/internal/agent"
	"docreview/internal/config"
	"docreview/internal/history"
	dlog "docreview/internal/log"
	"docreview/internal/report"
	"docreview/internal/runner"
	"docreview/internal/ui/live"
	"docreview/internal/ui/panel"
	"docreview/internal/ui/picker"
)

// Seams replaced in tests.
var (
	newProvider    = agent.NewProvider
	pickGuidelines = picker.Run
	showPanel      = panel.Show
	startLive      = func(stdout io.Writer, opts live.Options) liveUI { return live.Start(stdout, opts) }
)

// liveUI is the part of the live controller a review run drives.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait()
}

// reviewOptions holds the review command flags.
type reviewOptions struct {
	document     string
	guidelines   string
	only         []string
	pick         bool
	output       string
	jsonFile     string
	markdownFile string
	configPath   string
	model        string
	ui           string
	logPath      string
	verbose      bool
	noColor      bool
	watch        bool
}

// NewReviewCmd creates the review command.
func NewReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review a document against a guideline spreadsheet",
		Long: `Review loads the article and the guideline spreadsheet, asks the model one
question per selected guideline, and writes the answers to the results file.

Each answer is classified against the guideline's Exist column:
  yes          -> Yes when the answer contains "yes", otherwise No
  no           -> No when the answer contains "yes", otherwise Yes
  no relevant  -> N/A

Examples:
  # Review every guideline
  docreview review --document article.docx --guidelines guidelines.xlsx

  # Review two guidelines only, and also write a Markdown report
  docreview review -d article.docx -g guidelines.xlsx \
    --only "Safety warning" --only "Contact details" --markdown report.md

  # Pick guidelines interactively, then keep re-running on file changes
  docreview review -d article.docx -g guidelines.xlsx --select --watch`,
		Args: cobra.NoArgs,
		RunE: runReviewCmd,
	}

	flags := cmd.Flags()
	flags.StringP("document", "d", "", "Article to review (.docx, .txt, .md)")
	flags.StringP("guidelines", "g", "", "Guideline spreadsheet (.xlsx, .csv)")
	flags.StringArray("only", nil, "Review only the guideline with this title (repeatable)")
	flags.Bool("select", false, "Choose guidelines interactively before reviewing")
	flags.StringP("output", "o", "", "Results file (default: output.results_file or results.txt)")
	flags.String("json", "", "Also write a JSON report to this file")
	flags.String("markdown", "", "Also write a Markdown report to this file")
	flags.StringP("config", "c", "", "Config file (default: search for .docreview/config.yml)")
	flags.StringP("model", "m", "", "Model to query (overrides config)")
	flags.String("ui", "", "Output mode: auto, live or plain (overrides config)")
	flags.String("log", "", "Append debug JSON logs to this file")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("watch", "w", false, "Re-run the review when the document or guidelines change")

	return cmd
}

// runReviewCmd executes the review command.
func runReviewCmd(cmd *cobra.Command, _ []string) error {
	opts, err := reviewOptionsFrom(cmd)
	if err != nil {
		return err
	}
	return runReview(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// reviewOptionsFrom reads the review flags.
func reviewOptionsFrom(cmd *cobra.Command) (reviewOptions, error) {
	flags := cmd.Flags()
	opts := reviewOptions{verbose: getVerboseFlag(cmd)}
	var err error
	stringFlags := []struct {
		name   string
		target *string
	}{
		{"document", &opts.document},
		{"guidelines", &opts.guidelines},
		{"output", &opts.output},
		{"json", &opts.jsonFile},
		{"markdown", &opts.markdownFile},
		{"config", &opts.configPath},
		{"model", &opts.model},
		{"ui", &opts.ui},
		{"log", &opts.logPath},
	}
	for _, s := range stringFlags {
		if *s.target, err = flags.GetString(s.name); err != nil {
			return reviewOptions{}, err
		}
	}
	if opts.only, err = flags.GetStringArray("only"); err != nil {
		return reviewOptions{}, err
	}
	if opts.pick, err = flags.GetBool("select"); err != nil {
		return reviewOptions{}, err
	}
	if opts.noColor, err = flags.GetBool("no-color"); err != nil {
		return reviewOptions{}, err
	}
	if opts.watch, err = flags.GetBool("watch"); err != nil {
		return reviewOptions{}, err
	}
	return opts, nil
}

// applyOverrides layers command flags over the loaded config.
func applyOverrides(cfg *config.Config, opts reviewOptions) {
	if value := strings.TrimSpace(opts.model); value != "" {
		cfg.Model = value
	}
	if value := strings.TrimSpace(opts.ui); value != "" {
		cfg.UI = strings.ToLower(value)
	}
	if value := strings.TrimSpace(opts.output); value != "" {
		cfg.Output.ResultsFile = value
	}
	if value := strings.TrimSpace(opts.jsonFile); value != "" {
		cfg.Output.JSONFile = value
	}
	if value := strings.TrimSpace(opts.markdownFile); value != "" {
		cfg.Output.MarkdownFile = value
	}
}

// providerSettings maps config onto completion client settings.
func providerSettings(cfg config.Config) agent.Settings {
	return agent.Settings{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		APIKeyEnv: cfg.APIKeyEnv,
		Stream:    cfg.Stream,
		Retries:   cfg.Resilience.Retries,
		Timeout:   time.Duration(cfg.Resilience.TimeoutSeconds) * time.Second,
	}
}

// buildLogger logs to stderr and, with a log path, to a JSON file as well.
func buildLogger(stderr io.Writer, verbose bool, logPath string) (*slog.Logger, func() error, error) {
	logger := dlog.New(stderr, verbose)
	if strings.TrimSpace(logPath) == "" {
		return logger, func() error { return nil }, nil
	}
	fileLogger, closeFn, err := dlog.OpenFile(logPath)
	if err != nil {
		return nil, nil, err
	}
	return dlog.Tee(logger, fileLogger), closeFn, nil
}

// runReview wires config, inputs, provider and outputs, then reviews once
// or, with --watch, until ctx is cancelled.
func runReview(ctx context.Context, opts reviewOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, cfgPath, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitWith(ExitError)
	}
	applyOverrides(&cfg, opts)

	decision, err := resolveUIMode(cfg.UI, opts.verbose, opts.watch, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitWith(ExitUsage)
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}
	noColor := colorDisabled(opts.noColor, stdout)

	logger, closeLog, err := buildLogger(stderr, opts.verbose, opts.logPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
		return exitWith(ExitError)
	}
	defer func() { _ = closeLog() }()
	logger.Debug("config resolved", "path", cfgPath, "provider", cfg.Provider, "model", cfg.Model, "ui", cfg.UI)

	r := &reviewer{
		opts:     opts,
		cfg:      cfg,
		decision: decision,
		noColor:  noColor,
		logger:   logger,
		session:  runner.NewSession(runner.SessionOptions{Logger: logger}),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}

	r.loadInputs(true, true)
	if err := r.session.CheckInputs(); err != nil {
		return r.inputError(err)
	}
	if opts.pick {
		if err := pickGuidelines(r.session.Guidelines(), stdin, stdout, noColor); err != nil {
			if errors.Is(err, picker.ErrAborted) {
				fmt.Fprintln(stderr, "Review cancelled.")
			} else {
				fmt.Fprintf(stderr, "Guideline selection failed: %v\n", err)
			}
			return exitWith(ExitError)
		}
		if err := r.session.CheckInputs(); err != nil {
			return r.inputError(err)
		}
	}

	r.provider, err = newProvider(providerSettings(cfg), nil)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to configure provider: %v\n", err)
		return exitWith(ExitError)
	}

	r.outputs = runner.Outputs{
		ResultsFile:  cfg.Output.ResultsFile,
		JSONFile:     cfg.Output.JSONFile,
		MarkdownFile: cfg.Output.MarkdownFile,
	}
	if cfg.HistoryEnabled() {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history not recorded", "path", cfg.History.Path, "error", err)
			fmt.Fprintf(stderr, "Warning: history not recorded: %v\n", err)
		} else {
			defer store.Close()
			r.outputs.History = store
		}
	}

	if err := r.reviewOnce(ctx); err != nil {
		return err
	}
	if opts.watch {
		return r.watch(ctx)
	}
	return nil
}

// reviewer carries the state of one review command invocation.
type reviewer struct {
	opts     reviewOptions
	cfg      config.Config
	decision uiModeDecision
	noColor  bool
	logger   *slog.Logger
	session  *runner.Session
	provider agent.Provider
	outputs  runner.Outputs

	stdin          io.Reader
	stdout, stderr io.Writer
}

// loadInputs (re)loads the requested inputs. The session logs failures and
// keeps the previous article or guideline set.
func (r *reviewer) loadInputs(document, guidelines bool) {
	if document && r.opts.document != "" {
		_ = r.session.LoadDocument(r.opts.document)
	}
	if guidelines && r.opts.guidelines != "" {
		if err := r.session.LoadGuidelines(r.opts.guidelines); err != nil {
			return
		}
		if len(r.opts.only) > 0 {
			for _, title := range r.session.Guidelines().SelectOnly(r.opts.only) {
				fmt.Fprintf(r.stderr, "Warning: no guideline titled %q\n", title)
			}
		}
	}
}

// inputError reports an upfront rejection.
func (r *reviewer) inputError(err error) error {
	r.logger.Debug("review rejected", "error", err)
	fmt.Fprintln(r.stderr, runner.InputErrorMessage)
	return exitWith(ExitUsage)
}

// reviewOnce runs one review and presents its results.
func (r *reviewer) reviewOnce(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var observers runner.MultiObserver
	if r.opts.verbose {
		observers = append(observers, runner.NewVerboseObserver(r.stdout, r.noColor))
	}
	var ui liveUI
	if r.decision.useLive {
		ui = startLive(r.stdout, live.Options{NoColor: r.noColor, Model: r.cfg.Model, OnInterrupt: cancel})
		observers = append(observers, ui)
	}

	params := runner.ReviewParams{
		Provider:     r.provider,
		ProviderName: r.cfg.Provider,
		Model:        r.cfg.Model,
		Observer:     observers,
	}
	run, err := r.session.ReviewAndWrite(ctx, params, r.outputs)
	if ui != nil {
		ui.Close()
		ui.Wait()
	}
	if err != nil {
		if runner.IsInputError(err) {
			return r.inputError(err)
		}
		if run.RunID == "" {
			fmt.Fprintf(r.stderr, "Review failed: %v\n", err)
			return exitWith(ExitError)
		}
		var outErr *runner.OutputError
		resultsWritten := errors.As(err, &outErr) && outErr.Output != "results file"
		r.present(run, resultsWritten)
		if outErr != nil {
			fmt.Fprintf(r.stderr, "Failed to write %s: %v\n", outErr.Output, outErr.Err)
		} else {
			fmt.Fprintf(r.stderr, "Failed to write outputs: %v\n", err)
		}
		return exitWith(ExitError)
	}
	r.present(run, true)
	return nil
}

// present shows a finished run in the panel or as plain text.
func (r *reviewer) present(run report.Run, resultsWritten bool) {
	shown := false
	if r.decision.useLive {
		err := showPanel(run, r.stdin, r.stdout, r.noColor)
		if err != nil {
			r.logger.Warn("results panel unavailable", "error", err)
		}
		shown = err == nil
	}
	if !shown {
		fmt.Fprint(r.stdout, panel.Render(run.Results, r.noColor))
		fmt.Fprintln(r.stdout)
		fmt.Fprintln(r.stdout, summaryLine(run.Summary))
	}
	if resultsWritten {
		fmt.Fprintf(r.stdout, "Results written to %s\n", r.outputs.ResultsFile)
	}
}
