package cssratchet

import (
	"errors"

	"github.com/yacobolo/cssratchet/internal/filelint"
	"github.com/yacobolo/cssratchet/internal/regression"
)

// Process exit codes
const (
	ExitOK         = 0
	ExitRegression = 1
	ExitNoFiles    = 2
	ExitDiffTool   = 3
	ExitFatal      = 4
)

// ExitCode maps a Run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, regression.ErrRegression):
		return ExitRegression
	case errors.Is(err, filelint.ErrNoFiles):
		return ExitNoFiles
	case errors.Is(err, regression.ErrToolExecution):
		return ExitDiffTool
	default:
		return ExitFatal
	}
}
