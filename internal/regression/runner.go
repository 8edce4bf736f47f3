package regression

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultDiffCommand compares two files ignoring whitespace amount changes.
const DefaultDiffCommand = "diff -u -b"

// DiffResult is the captured output of one diff invocation.
type DiffResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// DiffRunner compares the baseline with the fresh report.
type DiffRunner interface {
	Diff(ctx context.Context, base, dest string) (DiffResult, error)
}

// CommandRunner runs an external diff program with the two paths appended
// to its arguments.
type CommandRunner struct {
	Command string
	Args    []string
}

// NewCommandRunner parses a command line such as "diff -u -b". An empty
// line selects DefaultDiffCommand.
func NewCommandRunner(line string) *CommandRunner {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultDiffCommand)
	}
	return &CommandRunner{Command: fields[0], Args: fields[1:]}
}

// String returns the command line without file operands.
func (r *CommandRunner) String() string {
	return strings.Join(append([]string{r.Command}, r.Args...), " ")
}

// Diff runs the command. A non-zero exit status is reported through
// DiffResult.ExitCode, not as an error; errors mean the program could not
// run at all.
func (r *CommandRunner) Diff(ctx context.Context, base, dest string) (DiffResult, error) {
	args := make([]string, 0, len(r.Args)+2)
	args = append(args, r.Args...)
	args = append(args, base, dest)

	// #nosec G204 - the diff command is operator configuration
	cmd := exec.CommandContext(ctx, r.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return DiffResult{}, ctx.Err()
	}

	result := DiffResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return DiffResult{}, err
	}

	slog.Debug("Ran diff tool",
		slog.String("command", r.String()),
		slog.Int("exit_code", result.ExitCode),
		slog.Int("stdout_bytes", len(result.Stdout)),
	)

	return result, nil
}
