package regression

import (
	"errors"
	"fmt"
)

var (
	// ErrRegression indicates the fresh report has new violations.
	ErrRegression = errors.New("syntax error or coding violations")

	// ErrToolExecution indicates the diff tool could not produce a usable result.
	ErrToolExecution = errors.New("diff tool failed")
)

// RegressionError carries the evidence of a failed ratchet check.
type RegressionError struct {
	// Diff is the raw diff tool output.
	Diff string

	// Stats summarizes Diff.
	Stats DiffStats

	// Delta is current report lines minus baseline lines.
	Delta int
}

// Error implements the error interface.
func (e *RegressionError) Error() string {
	return ErrRegression.Error()
}

// Is makes errors.Is(err, ErrRegression) match.
func (e *RegressionError) Is(target error) bool {
	return target == ErrRegression
}

// ToolError wraps a diff tool failure with its captured output.
type ToolError struct {
	// Command is the tool that failed (e.g., "diff").
	Command string

	// ExitCode is the tool's exit status, -1 when it never ran.
	ExitCode int

	// Stderr is whatever the tool wrote to its error stream.
	Stderr string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrToolExecution, e.Command)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" exited with %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Is makes errors.Is(err, ErrToolExecution) match.
func (e *ToolError) Is(target error) bool {
	return target == ErrToolExecution
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ToolError) Unwrap() error {
	return e.Err
}
