package cssratchet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssratchet/internal/filelint"
	"github.com/yacobolo/cssratchet/internal/regression"
	"github.com/yacobolo/cssratchet/internal/report"
	"github.com/yacobolo/cssratchet/internal/ruleset"
)

type fakeRunner struct {
	result regression.DiffResult
	calls  int
}

func (f *fakeRunner) Diff(context.Context, string, string) (regression.DiffResult, error) {
	f.calls++
	return f.result, nil
}

type fixture struct {
	dir    string
	cfg    Config
	stdout bytes.Buffer
	stderr bytes.Buffer
	runner *fakeRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		dir: dir,
		cfg: Config{
			Dest:     filepath.Join(dir, "report", "csslint.txt"),
			Baseline: filepath.Join(dir, "report", "csslint_base.txt"),
			Rules:    ruleset.Options{"*": false, "important": 1},
		},
		runner: &fakeRunner{},
	}
}

func (f *fixture) css(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	f.cfg.Files = append(f.cfg.Files, path)
	return path
}

func (f *fixture) run(t *testing.T) (*Outcome, error) {
	t.Helper()
	return Run(context.Background(), f.cfg, Options{
		Stdout: &f.stdout,
		Stderr: &f.stderr,
		Runner: f.runner,
	})
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func importantLines(n int) string {
	var b strings.Builder
	b.WriteString(".a {\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  color: red !important;\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func TestRun_CreatesMissingBaseline(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", ".a { color: red; }\n")
	f.css(t, "b.css", importantLines(2))

	outcome, err := f.run(t)
	require.NoError(t, err)

	assert.True(t, outcome.BaselineCreated)
	assert.True(t, outcome.Passed())
	assert.Equal(t, 3, outcome.BaseLines)
	assert.Equal(t, 3, outcome.DestLines)
	assert.Equal(t, 2, outcome.Warnings)
	assert.Equal(t, 1, outcome.Rules)
	assert.Zero(t, f.runner.calls)

	assert.Equal(t, f.read(t, f.cfg.Baseline), f.read(t, f.cfg.Dest))
	assert.Contains(t, f.stdout.String(), "creating initial file")
	assert.Contains(t, f.stdout.String(), OKMessage)
}

func TestRun_EqualLineCountPassesWithoutDiff(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.css(t, fmt.Sprintf("c%d.css", i), ".c { color: red; }\n")
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cfg.Baseline), 0755))
	require.NoError(t, os.WriteFile(f.cfg.Baseline, []byte("1\n2\n3\n4\n5\n"), 0644))

	outcome, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, regression.StatePass, outcome.State)
	assert.False(t, outcome.BaselineCreated)
	assert.Equal(t, 5, outcome.BaseLines)
	assert.Equal(t, 5, outcome.DestLines)
	assert.False(t, outcome.Diffed)
	assert.Zero(t, f.runner.calls)
	assert.Equal(t, ExitOK, ExitCode(err))
}

func TestRun_GrowingReportFails(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", importantLines(8))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cfg.Baseline), 0755))
	require.NoError(t, os.WriteFile(f.cfg.Baseline, []byte("1\n2\n3\n4\n5\n"), 0644))

	f.runner.result = regression.DiffResult{
		Stdout:   "--- base\n+++ dest\n@@ -1 +1,2 @@\n 1\n+new\n",
		ExitCode: 1,
	}

	outcome, err := f.run(t)
	require.ErrorIs(t, err, regression.ErrRegression)
	assert.Equal(t, "syntax error or coding violations", err.Error())
	assert.Equal(t, ExitRegression, ExitCode(err))

	assert.Equal(t, regression.StateFail, outcome.State)
	assert.Equal(t, 5, outcome.BaseLines)
	assert.Equal(t, 8, outcome.DestLines)
	assert.True(t, outcome.Diffed)
	assert.Equal(t, 1, f.runner.calls)
	assert.Equal(t, []string{"new"}, outcome.Stats.Added)

	assert.Contains(t, f.stderr.String(), "+new")
	assert.NotContains(t, f.stdout.String(), OKMessage)
}

func TestRun_GrowingReportWithEmptyDiffPasses(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", importantLines(3))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cfg.Baseline), 0755))
	require.NoError(t, os.WriteFile(f.cfg.Baseline, []byte("1\n"), 0644))

	outcome, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, outcome.Passed())
	assert.True(t, outcome.Diffed)
	assert.Equal(t, 1, f.runner.calls)
	assert.Contains(t, f.stdout.String(), OKMessage)
}

func TestRun_DiffToolFailure(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", importantLines(3))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cfg.Baseline), 0755))
	require.NoError(t, os.WriteFile(f.cfg.Baseline, []byte("1\n"), 0644))

	f.runner.result = regression.DiffResult{Stderr: "diff: cannot read\n", ExitCode: 2}

	outcome, err := f.run(t)
	require.ErrorIs(t, err, regression.ErrToolExecution)
	assert.False(t, errors.Is(err, regression.ErrRegression))
	assert.Equal(t, ExitDiffTool, ExitCode(err))
	assert.Equal(t, regression.StateToolError, outcome.State)
	assert.Contains(t, f.stderr.String(), "diff: cannot read")
	assert.NotContains(t, f.stdout.String(), OKMessage)
}

func TestRun_SkipsEmptyFiles(t *testing.T) {
	f := newFixture(t)
	empty := f.css(t, "empty.css", "")
	f.css(t, "a.css", ".a { color: red; }\n")

	outcome, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.FilesLinted)
	assert.Equal(t, 1, outcome.FilesSkipped)

	assert.Contains(t, f.stdout.String(), "Skipping empty file "+empty+".")
	assert.NotContains(t, f.read(t, f.cfg.Dest), "empty.css")
}

func TestRun_NoFiles(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.run(t)
	require.ErrorIs(t, err, filelint.ErrNoFiles)
	assert.Nil(t, outcome)
	assert.Equal(t, ExitNoFiles, ExitCode(err))

	_, statErr := os.Stat(f.cfg.Dest)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(f.cfg.Baseline)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_UnknownFormat(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", ".a { color: red; }\n")
	f.cfg.Format = "checkstyle"

	_, err := f.run(t)
	require.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.Equal(t, ExitFatal, ExitCode(err))

	_, statErr := os.Stat(f.cfg.Dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_UpdateBaseline(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", importantLines(4))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cfg.Baseline), 0755))
	require.NoError(t, os.WriteFile(f.cfg.Baseline, []byte("old\n"), 0644))
	f.cfg.UpdateBaseline = true

	outcome, err := f.run(t)
	require.NoError(t, err)
	assert.True(t, outcome.BaselineUpdated)
	assert.Equal(t, 4, outcome.BaseLines)
	assert.Zero(t, f.runner.calls)
	assert.Equal(t, f.read(t, f.cfg.Dest), f.read(t, f.cfg.Baseline))
}

func TestRun_ReplacesDestination(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", ".a { color: red; }\n")
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cfg.Dest), 0755))
	require.NoError(t, os.WriteFile(f.cfg.Dest, []byte("stale\nstale\nstale\n"), 0644))

	_, err := f.run(t)
	require.NoError(t, err)

	dest := f.read(t, f.cfg.Dest)
	assert.NotContains(t, dest, "stale")
	assert.Equal(t, f.cfg.Files[0]+": Lint Free!\n", dest)
}

func TestRun_InlineRulesWinOverCSSLintRC(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", "#main { color: red !important; }\n")

	rc := filepath.Join(f.dir, ".csslintrc")
	require.NoError(t, os.WriteFile(rc, []byte(`{
  // only ids, as errors
  "*": false,
  "ids": 2,
  "important": 2,
}`), 0644))
	f.cfg.CSSLintRC = rc
	f.cfg.Rules = ruleset.Options{"important": false}

	outcome, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Rules)
	assert.Equal(t, 1, outcome.Errors)
	assert.Zero(t, outcome.Warnings)
	assert.Contains(t, f.read(t, f.cfg.Dest), "Error - Don't use IDs in selectors. (ids)")
}

func TestRun_InvalidCSSLintRC(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", ".a { color: red; }\n")
	f.cfg.CSSLintRC = filepath.Join(f.dir, "missing.csslintrc")

	_, err := f.run(t)
	require.ErrorIs(t, err, ruleset.ErrConfig)
	assert.Equal(t, ExitFatal, ExitCode(err))
}

func TestRun_QuietWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.css(t, "a.css", ".a { color: red; }\n")

	_, err := Run(context.Background(), f.cfg, Options{
		Stdout: &f.stdout,
		Stderr: &f.stderr,
		Quiet:  true,
		Runner: f.runner,
	})
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())
	assert.Empty(t, f.stderr.String())
}

func TestRun_VerbosePrintsMessages(t *testing.T) {
	f := newFixture(t)
	path := f.css(t, "a.css", importantLines(1))

	_, err := Run(context.Background(), f.cfg, Options{
		Stdout:  &f.stdout,
		Stderr:  &f.stderr,
		Verbose: true,
		Runner:  f.runner,
	})
	require.NoError(t, err)

	out := f.stdout.String()
	assert.Contains(t, out, "Linting "+path+"...ERROR")
	assert.Contains(t, out, path+":2:14: warning: Use of !important (important)")
	assert.Contains(t, out, "1 issue:\n* important: 1\n")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"regression", &regression.RegressionError{}, ExitRegression},
		{"no files", fmt.Errorf("run: %w", filelint.ErrNoFiles), ExitNoFiles},
		{"diff tool", &regression.ToolError{Command: "diff", ExitCode: 2}, ExitDiffTool},
		{"config", ruleset.ErrConfig, ExitFatal},
		{"formatter", report.ErrUnknownFormat, ExitFatal},
		{"unknown", errors.New("boom"), ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
