// Package filelint runs the CSS rule engine over an ordered file set.
package filelint

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yacobolo/cssratchet/internal/csslint"
	"github.com/yacobolo/cssratchet/internal/term"
)

var (
	// ErrNoFiles indicates an empty input file set.
	ErrNoFiles = errors.New("there are no files to lint")
	// ErrIO indicates a source file could not be read.
	ErrIO = errors.New("reading source file")
)

// VerifyFunc lints the content of one file.
type VerifyFunc func(content string, cfg csslint.Config) csslint.Result

// Stats summarizes one Lint call.
type Stats struct {
	Linted       int // Files verified and recorded
	Skipped      int // Empty files
	WithMessages int // Files with at least one message
}

// Linter verifies files one at a time and collects their results.
type Linter struct {
	cfg       csslint.Config
	verify    VerifyFunc
	w         io.Writer
	verbose   bool
	useColors bool
}

// Option configures the Linter.
type Option func(*Linter)

// WithVerifier replaces the rule engine.
func WithVerifier(fn VerifyFunc) Option {
	return func(l *Linter) {
		l.verify = fn
	}
}

// WithOutput sets where progress lines are written.
func WithOutput(w io.Writer) Option {
	return func(l *Linter) {
		l.w = w
	}
}

// WithVerbose prints a status line for every file instead of failing files only.
func WithVerbose(verbose bool) Option {
	return func(l *Linter) {
		l.verbose = verbose
	}
}

// WithColors enables colored progress lines.
func WithColors(useColors bool) Option {
	return func(l *Linter) {
		l.useColors = useColors
	}
}

// New creates a linter for the resolved rule configuration.
func New(cfg csslint.Config, opts ...Option) *Linter {
	l := &Linter{
		cfg:    cfg,
		verify: csslint.Verify,
		w:      io.Discard,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Lint verifies each file in order. Empty files are skipped and do not
// enter the result set.
func (l *Linter) Lint(files []string) (*csslint.ResultSet, Stats, error) {
	var stats Stats
	if len(files) == 0 {
		return nil, stats, ErrNoFiles
	}

	set := csslint.NewResultSet()
	for _, path := range files {
		// #nosec G304 - paths come from the caller's file set
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, stats, fmt.Errorf("%w %s: %v", ErrIO, path, err)
		}

		if len(content) == 0 {
			stats.Skipped++
			fmt.Fprintf(l.w, "Skipping empty file %s.\n", term.RenderStyle(term.StyleCyan, path, l.useColors))
			slog.Debug("Skipped empty file", slog.String("file", path))
			continue
		}

		result := l.verify(string(content), l.cfg)
		set.Put(path, result)
		stats.Linted++
		if result.HasMessages() {
			stats.WithMessages++
		}

		l.printStatus(path, result)

		slog.Debug("Linted file",
			slog.String("file", path),
			slog.Int("errors", result.Count(csslint.SeverityError)),
			slog.Int("warnings", result.Count(csslint.SeverityWarning)),
		)
	}

	return set, stats, nil
}

// printStatus writes "Linting <file>...OK|ERROR". Clean files are only
// reported in verbose mode.
func (l *Linter) printStatus(path string, result csslint.Result) {
	if !result.HasMessages() && !l.verbose {
		return
	}

	status := term.RenderStyle(term.StyleGreen, "OK", l.useColors)
	if result.HasMessages() {
		status = term.RenderStyle(term.StyleRed, "ERROR", l.useColors)
	}

	fmt.Fprintf(l.w, "Linting %s...%s\n", term.RenderStyle(term.StyleCyan, path, l.useColors), status)
}
