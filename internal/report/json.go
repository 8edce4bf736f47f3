package report

import (
	"bytes"
	"encoding/json"

	"github.com/yacobolo/cssratchet/internal/csslint"
)

// jsonMessage is one JSON Lines record.
type jsonMessage struct {
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Rule     string `json:"rule"`
	Rollup   bool   `json:"rollup,omitempty"`
	Source   string `json:"source,omitempty"`
}

// jsonFormatter writes one object per message so each violation stays on
// its own line. Clean files write nothing.
type jsonFormatter struct{}

func (jsonFormatter) StartFormat() string { return "" }

func (jsonFormatter) EndFormat() string { return "" }

func (jsonFormatter) FormatResults(result csslint.Result, filename string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	for _, m := range result.Messages {
		record := jsonMessage{
			File:     filename,
			Line:     m.Line,
			Column:   m.Col,
			Severity: m.Severity.String(),
			Message:  m.Text,
			Rule:     m.RuleID,
			Rollup:   m.Rollup,
			Source:   m.Evidence,
		}
		// Encoding a flat struct of strings and ints cannot fail.
		_ = encoder.Encode(record)
	}
	return buf.String()
}
