package report

import (
	"fmt"
	"strings"

	"github.com/yacobolo/cssratchet/internal/csslint"
)

// compactFormatter writes one line per message:
//
//	style.css: line 3, col 5, Warning - Use of !important (important)
type compactFormatter struct{}

func (compactFormatter) StartFormat() string { return "" }

func (compactFormatter) EndFormat() string { return "" }

func (compactFormatter) FormatResults(result csslint.Result, filename string) string {
	if !result.HasMessages() {
		return filename + ": Lint Free!\n"
	}

	var b strings.Builder
	for _, m := range result.Messages {
		if m.Rollup {
			fmt.Fprintf(&b, "%s: %s - %s (%s)\n", filename, m.Severity.Title(), m.Text, m.RuleID)
			continue
		}
		fmt.Fprintf(&b, "%s: line %d, col %d, %s - %s (%s)\n", filename, m.Line, m.Col, m.Severity.Title(), m.Text, m.RuleID)
	}
	return b.String()
}
