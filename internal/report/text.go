package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yacobolo/cssratchet/internal/csslint"
)

// textFormatter mirrors the csslint "text" layout: a summary per file
// followed by numbered messages with their evidence.
type textFormatter struct{}

func (textFormatter) StartFormat() string { return "" }

func (textFormatter) EndFormat() string { return "\n" }

func (textFormatter) FormatResults(result csslint.Result, filename string) string {
	n := len(result.Messages)
	if n == 0 {
		return fmt.Sprintf("\n\ncsslint: No errors in %s.", filename)
	}

	var b strings.Builder
	problems := fmt.Sprintf("are %d problems", n)
	if n == 1 {
		problems = "is 1 problem"
	}
	fmt.Fprintf(&b, "\n\ncsslint: There %s in %s.", problems, filename)

	short := filepath.Base(filename)
	for i, m := range result.Messages {
		b.WriteString("\n\n")
		b.WriteString(short)
		if m.Rollup {
			fmt.Fprintf(&b, "\n%d: %s\n%s", i+1, m.Severity, m.Text)
			continue
		}
		fmt.Fprintf(&b, ":%d: %s at line %d, col %d\n%s\n%s", i+1, m.Severity, m.Line, m.Col, m.Text, m.Evidence)
	}
	return b.String()
}
