package csslint

import (
	"sort"
	"strings"
)

// Severity represents the type of a lint message.
type Severity int

const (
	// SeverityWarning is reported for rules configured with 1 (or any truthy non-2 value).
	SeverityWarning Severity = iota + 1
	// SeverityError is reported for rules configured with 2 and for parse errors.
	SeverityError
)

// String returns the lowercase name used in reports ("warning", "error").
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Title returns the capitalized form used by the compact and text formats.
func (s Severity) Title() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Message is a single violation reported for a file.
type Message struct {
	Line     int    // 1-based, 0 for rollups
	Col      int    // 1-based, 0 for rollups
	Severity Severity
	RuleID   string // "important"
	RuleName string // "Disallow !important"
	Text     string // "Use of !important"
	Evidence string // Source line the message points at
	Rollup   bool   // File-level message without a position
}

// Result holds the messages reported for one file.
type Result struct {
	Messages []Message
}

// HasMessages reports whether the file produced any message.
func (r Result) HasMessages() bool {
	return len(r.Messages) > 0
}

// Count returns the number of messages with the given severity.
func (r Result) Count(severity Severity) int {
	n := 0
	for _, m := range r.Messages {
		if m.Severity == severity {
			n++
		}
	}
	return n
}

// sortMessages orders positioned messages by line then column, rollups last.
func sortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if a.Rollup != b.Rollup {
			return !a.Rollup
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}
