// Package baseline manages the accepted-violations report and the fresh
// report it is compared against.
package baseline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultBasePath is the baseline location relative to the working directory.
const DefaultBasePath = "report/csslint_base.txt"

// ErrIO indicates a baseline or report file could not be read or written.
var ErrIO = errors.New("report file i/o")

// RenderFunc writes a report.
type RenderFunc func(w io.Writer) error

// Manager owns the baseline and destination report paths.
type Manager struct {
	BasePath string
	DestPath string
}

// New creates a Manager. An empty basePath selects DefaultBasePath.
func New(basePath, destPath string) *Manager {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	return &Manager{BasePath: basePath, DestPath: destPath}
}

// Exists reports whether the baseline file is present.
func (m *Manager) Exists() (bool, error) {
	_, err := os.Stat(m.BasePath)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %v", ErrIO, m.BasePath, err)
	}
}

// Init writes the baseline when it is absent and reports whether it did.
// An existing baseline is never touched.
func (m *Manager) Init(render RenderFunc) (bool, error) {
	exists, err := m.Exists()
	if err != nil || exists {
		return false, err
	}

	if err := writeFile(m.BasePath, render); err != nil {
		return false, err
	}
	slog.Debug("Created baseline", slog.String("path", m.BasePath))
	return true, nil
}

// Regenerate overwrites the baseline with a fresh report.
func (m *Manager) Regenerate(render RenderFunc) error {
	if err := writeFile(m.BasePath, render); err != nil {
		return err
	}
	slog.Debug("Regenerated baseline", slog.String("path", m.BasePath))
	return nil
}

// WriteDest replaces the destination report. A previous report is removed
// first so stale content never survives a run.
func (m *Manager) WriteDest(render RenderFunc) error {
	if err := os.Remove(m.DestPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %v", ErrIO, m.DestPath, err)
	}
	return writeFile(m.DestPath, render)
}

// BaseLines counts the records in the baseline.
func (m *Manager) BaseLines() (int, error) {
	return countFile(m.BasePath)
}

// DestLines counts the records in the destination report.
func (m *Manager) DestLines() (int, error) {
	return countFile(m.DestPath)
}

// CountLines counts newline-terminated records. A trailing line without a
// newline counts as one more record.
func CountLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func countFile(path string) (int, error) {
	// #nosec G304 - report paths come from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}
	return CountLines(data), nil
}

func writeFile(path string, render RenderFunc) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrIO, dir, err)
		}
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	// #nosec G306 - reports are meant to be readable
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}
