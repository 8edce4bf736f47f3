package cssratchet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/yacobolo/cssratchet/internal/baseline"
	"github.com/yacobolo/cssratchet/internal/csslint"
	"github.com/yacobolo/cssratchet/internal/filelint"
	"github.com/yacobolo/cssratchet/internal/regression"
	"github.com/yacobolo/cssratchet/internal/report"
	"github.com/yacobolo/cssratchet/internal/ruleset"
	"github.com/yacobolo/cssratchet/internal/term"
)

// OKMessage is printed when a run finds no regression.
const OKMessage = "ok, no syntax error and no coding violations"

// Config holds the task configuration
type Config struct {
	Files             []string        // Glob patterns or paths (e.g., "web/**/*.css")
	Dest              string          // Report written on every run
	Baseline          string          // Accepted report (default report/csslint_base.txt)
	CSSLintRC         string          // Optional csslintrc path
	Rules             ruleset.Options // Inline rule overrides, win over CSSLintRC
	Format            string          // compact (default), text or json
	AbsoluteFilePaths bool            // Resolve file names in reports
	UpdateBaseline    bool            // Overwrite the baseline with the current report
	DiffCommand       string          // Default "diff -u -b"
}

// Options controls where a run writes and which collaborators it uses.
type Options struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Verbose   bool // Print a status line for every file
	Quiet     bool // Suppress all output; rely on the error and exit code
	UseColors bool

	// Runner replaces the diff tool built from Config.DiffCommand.
	Runner regression.DiffRunner
	// Verifier replaces the rule engine.
	Verifier filelint.VerifyFunc
}

// Outcome summarizes a completed run.
type Outcome struct {
	FilesLinted     int
	FilesSkipped    int
	Errors          int
	Warnings        int
	Rules           int  // Enabled rules after resolution
	BaselineCreated bool // No baseline existed and one was written
	BaselineUpdated bool // The baseline was explicitly regenerated

	State     regression.State
	BaseLines int
	DestLines int
	Diffed    bool // The report grew and the diff tool was run
	Stats     regression.DiffStats
}

// Passed reports whether the run found no regression.
func (o *Outcome) Passed() bool {
	return o != nil && o.State == regression.StatePass
}

// Run lints cfg.Files, writes the report and checks it against the
// baseline. A regression is returned as *regression.RegressionError with
// the outcome still populated.
func Run(ctx context.Context, cfg Config, opts Options) (*Outcome, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil || opts.Quiet {
		stdout = io.Discard
	}
	if stderr == nil || opts.Quiet {
		stderr = io.Discard
	}
	if cfg.Dest == "" {
		return nil, fmt.Errorf("%w: dest is required", ruleset.ErrConfig)
	}

	rules, err := resolveRules(cfg)
	if err != nil {
		return nil, err
	}

	if _, err := report.Lookup(cfg.Format); err != nil {
		return nil, err
	}

	files, discoverStats, err := filelint.Discover(cfg.Files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ruleset.ErrConfig, err)
	}
	slog.Debug("Discovered files",
		slog.Int("discovered", discoverStats.FilesDiscovered),
		slog.Int("selected", discoverStats.FilesSelected),
		slog.Int("gitignored", discoverStats.FilesSkipped),
	)

	linterOpts := []filelint.Option{
		filelint.WithOutput(stdout),
		filelint.WithVerbose(opts.Verbose),
		filelint.WithColors(opts.UseColors),
	}
	if opts.Verifier != nil {
		linterOpts = append(linterOpts, filelint.WithVerifier(opts.Verifier))
	}

	set, lintStats, err := filelint.New(rules, linterOpts...).Lint(files)
	if err != nil {
		if errors.Is(err, filelint.ErrNoFiles) {
			fmt.Fprintln(stderr, term.RenderStyle(term.StyleRed, "there are no files to lint!", opts.UseColors))
		}
		return nil, err
	}

	outcome := &Outcome{
		FilesLinted:  lintStats.Linted,
		FilesSkipped: lintStats.Skipped,
		Rules:        rules.Len(),
	}
	outcome.Errors, outcome.Warnings = set.Totals()

	if opts.Verbose {
		console := report.NewConsole(stdout, opts.UseColors)
		console.PrintMessages(set)
		console.PrintSummary(set)
	}

	render := func(w io.Writer) error {
		return report.Write(w, set, cfg.Format, cfg.AbsoluteFilePaths)
	}

	store := baseline.New(cfg.Baseline, cfg.Dest)
	if cfg.UpdateBaseline {
		if err := store.Regenerate(render); err != nil {
			return outcome, err
		}
		outcome.BaselineUpdated = true
		fmt.Fprintln(stdout, term.RenderStyle(term.StyleCyan, "updating baseline "+store.BasePath, opts.UseColors))
	} else {
		created, err := store.Init(render)
		if err != nil {
			return outcome, err
		}
		outcome.BaselineCreated = created
		if created {
			fmt.Fprintln(stdout, term.RenderStyle(term.StyleCyan, "creating initial file "+store.BasePath, opts.UseColors))
		}
	}

	if err := store.WriteDest(render); err != nil {
		return outcome, err
	}

	if outcome.BaseLines, err = store.BaseLines(); err != nil {
		return outcome, err
	}
	if outcome.DestLines, err = store.DestLines(); err != nil {
		return outcome, err
	}

	runner := opts.Runner
	if runner == nil {
		runner = regression.NewCommandRunner(cfg.DiffCommand)
	}

	checked, err := regression.NewReporter(regression.WithRunner(runner)).
		Check(ctx, outcome.BaseLines, outcome.DestLines, store.BasePath, store.DestPath)
	outcome.State = checked.State
	outcome.Diffed = checked.Diffed
	outcome.Stats = checked.Stats

	var toolErr *regression.ToolError
	switch {
	case err == nil:
		fmt.Fprintln(stdout, term.RenderStyle(term.StyleGreen, OKMessage, opts.UseColors))
	case errors.As(err, &toolErr):
		if toolErr.Stderr != "" {
			fmt.Fprint(stderr, toolErr.Stderr)
		}
	case errors.Is(err, regression.ErrRegression):
		printDiff(stderr, checked.Diff, opts.UseColors)
	}

	return outcome, err
}

func resolveRules(cfg Config) (ruleset.RuleConfig, error) {
	rcPath := cfg.CSSLintRC
	if rcPath == "" {
		if s, ok := cfg.Rules["csslintrc"].(string); ok {
			rcPath = s
		}
	}

	external, err := ruleset.LoadRC(rcPath)
	if err != nil {
		return ruleset.RuleConfig{}, err
	}

	rules := ruleset.Resolve(csslint.RuleIDs(), ruleset.Merge(cfg.Rules, external))
	slog.Debug("Resolved rules",
		slog.String("csslintrc", rcPath),
		slog.Any("enabled", rules.IDs()),
	)
	return rules, nil
}

// printDiff writes the regression evidence, added report lines in red.
func printDiff(w io.Writer, diff string, useColors bool) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = term.RenderStyle(term.StyleGray, text, useColors)
		case strings.HasPrefix(text, "@@"):
			text = term.RenderStyle(term.StyleYellow, text, useColors)
		case strings.HasPrefix(text, "+"):
			text = term.RenderStyle(term.StyleRed, text, useColors)
		case strings.HasPrefix(text, "-"):
			text = term.RenderStyle(term.StyleGreen, text, useColors)
		}
		fmt.Fprintln(w, text)
	}
}
