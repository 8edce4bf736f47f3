// Package regression decides whether a fresh lint report regressed
// against the accepted baseline.
//
// The check is a ratchet on report size: if the report has no more lines
// than the baseline the run passes without further work. Otherwise the
// two files are diffed, and any diff output fails the run with the diff as
// evidence.
package regression

import (
	"context"
	"log/slog"
)

// State is the terminal state of one check.
type State string

const (
	// StatePass means no regression was found.
	StatePass State = "PASS"
	// StateFail means the report grew and differs from the baseline.
	StateFail State = "FAIL"
	// StateToolError means the diff tool could not decide.
	StateToolError State = "TOOL_ERROR"
)

// Outcome describes how a check concluded.
type Outcome struct {
	State     State
	BaseLines int
	DestLines int
	// Diffed is set when the line counts required running the diff tool.
	Diffed bool
	Diff   string
	Stats  DiffStats
}

// Delta returns current minus baseline line count.
func (o *Outcome) Delta() int {
	return o.DestLines - o.BaseLines
}

// Reporter runs the ratchet check.
type Reporter struct {
	runner DiffRunner
}

// Option configures the Reporter.
type Option func(*Reporter)

// WithRunner replaces the diff tool.
func WithRunner(runner DiffRunner) Option {
	return func(r *Reporter) {
		r.runner = runner
	}
}

// NewReporter creates a Reporter that uses DefaultDiffCommand unless
// configured otherwise.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		runner: NewCommandRunner(DefaultDiffCommand),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Check compares line counts and, when the report grew, the file contents.
// It returns *RegressionError on FAIL and *ToolError on TOOL_ERROR; the
// outcome is returned in every case.
func (r *Reporter) Check(ctx context.Context, baseLines, destLines int, base, dest string) (*Outcome, error) {
	outcome := &Outcome{
		BaseLines: baseLines,
		DestLines: destLines,
	}

	slog.Debug("Counted report lines",
		slog.Int("baseline", baseLines),
		slog.Int("current", destLines),
	)

	if outcome.Delta() <= 0 {
		outcome.State = StatePass
		return outcome, nil
	}

	outcome.Diffed = true
	result, err := r.runner.Diff(ctx, base, dest)
	if err != nil {
		if ctx.Err() != nil {
			return outcome, err
		}
		outcome.State = StateToolError
		return outcome, &ToolError{Command: r.commandName(), ExitCode: -1, Err: err}
	}

	if result.Stderr != "" || result.ExitCode > 1 {
		outcome.State = StateToolError
		return outcome, &ToolError{
			Command:  r.commandName(),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	if result.Stdout == "" {
		// The report grew yet matches the baseline line for line once
		// whitespace is ignored.
		outcome.State = StatePass
		return outcome, nil
	}

	outcome.State = StateFail
	outcome.Diff = result.Stdout
	outcome.Stats = ParseStats(result.Stdout)

	return outcome, &RegressionError{
		Diff:  outcome.Diff,
		Stats: outcome.Stats,
		Delta: outcome.Delta(),
	}
}

func (r *Reporter) commandName() string {
	if s, ok := r.runner.(interface{ String() string }); ok {
		return s.String()
	}
	return "diff"
}
