package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yacobolo/cssratchet/internal/csslint"
	"github.com/yacobolo/cssratchet/internal/term"
)

// Console prints lint messages for a terminal in file:line:col form with
// the offending source line and a caret under the column.
type Console struct {
	w         io.Writer
	useColors bool
}

// NewConsole creates a terminal reporter.
func NewConsole(w io.Writer, useColors bool) *Console {
	return &Console{w: w, useColors: useColors}
}

// PrintMessages prints every message of set in processing order.
func (c *Console) PrintMessages(set *csslint.ResultSet) {
	_ = set.Each(func(path string, result csslint.Result) error {
		for _, m := range result.Messages {
			c.printMessage(path, m)
		}
		return nil
	})
}

func (c *Console) printMessage(path string, m csslint.Message) {
	location := path + ":"
	if !m.Rollup {
		location = fmt.Sprintf("%s:%d:%d:", path, m.Line, m.Col)
	}

	severity := term.RenderStyle(term.StyleYellow, m.Severity.String(), c.useColors)
	if m.Severity == csslint.SeverityError {
		severity = term.RenderStyle(term.StyleRed, m.Severity.String(), c.useColors)
	}

	fmt.Fprintf(c.w, "%s %s: %s%s\n",
		term.RenderStyle(term.StyleCyan, location, c.useColors),
		severity,
		m.Text,
		term.RenderStyle(term.StyleGray, " ("+m.RuleID+")", c.useColors))

	if m.Rollup || m.Evidence == "" {
		return
	}
	fmt.Fprintf(c.w, "\t%s\n", m.Evidence)
	fmt.Fprintf(c.w, "\t%s\n", term.RenderStyle(term.StyleYellow, caretIndicator(m.Evidence, m.Col), c.useColors))
}

// caretIndicator builds a "^" under column, copying tabs from the source
// line so the caret lines up in any tab width.
func caretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Columns count runes, not bytes.
	runes := []rune(sourceLine)
	prefixLen := column - 1
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	var padding strings.Builder
	for _, ch := range runes[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary prints message totals and a per-rule breakdown.
func (c *Console) PrintSummary(set *csslint.ResultSet) {
	errors, warnings := set.Totals()
	total := errors + warnings

	fmt.Fprintln(c.w, "")
	if errors > 0 && warnings > 0 {
		fmt.Fprintf(c.w, "%s (%s, %s):\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(c.w, "%s:\n", pluralizeCount(total, "issue", "issues"))
	}

	ruleCounts := make(map[string]int)
	_ = set.Each(func(_ string, result csslint.Result) error {
		for _, m := range result.Messages {
			ruleCounts[m.RuleID]++
		}
		return nil
	})

	rules := make([]string, 0, len(ruleCounts))
	for id := range ruleCounts {
		rules = append(rules, id)
	}
	sort.Strings(rules)
	for _, id := range rules {
		fmt.Fprintf(c.w, "* %s: %d\n", id, ruleCounts[id])
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
