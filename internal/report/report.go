// Package report renders lint results in csslint-compatible formats.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/yacobolo/cssratchet/internal/csslint"
)

// ErrUnknownFormat indicates a report style with no registered formatter.
var ErrUnknownFormat = errors.New("unknown report format")

// DefaultFormat is used when no style is configured.
const DefaultFormat = "compact"

// Formatter renders a report in three phases: a header, one block per
// file and a footer.
type Formatter interface {
	StartFormat() string
	FormatResults(result csslint.Result, filename string) string
	EndFormat() string
}

var formatters = map[string]func() Formatter{
	"compact": func() Formatter { return compactFormatter{} },
	"text":    func() Formatter { return textFormatter{} },
	"json":    func() Formatter { return jsonFormatter{} },
}

// Lookup returns a fresh formatter for style.
func Lookup(style string) (Formatter, error) {
	if style == "" {
		style = DefaultFormat
	}
	newFormatter, ok := formatters[style]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownFormat, style, Formats())
	}
	return newFormatter(), nil
}

// Formats returns the registered style names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders set to w with the formatter registered for style. When
// absolute is set, file names are resolved against the working directory.
func Write(w io.Writer, set *csslint.ResultSet, style string, absolute bool) error {
	f, err := Lookup(style)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, f.StartFormat()); err != nil {
		return err
	}

	err = set.Each(func(path string, result csslint.Result) error {
		name := path
		if absolute {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", path, err)
			}
			name = abs
		}
		_, err := io.WriteString(w, f.FormatResults(result, name))
		return err
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, f.EndFormat())
	return err
}
