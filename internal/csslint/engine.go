// Package csslint is a small csslint-compatible rule engine built on the
// tdewolff CSS lexer.
//
// The engine exposes a rule catalog and a Verify function. Rules subscribe
// to parser events (rule start/end, declarations, at-rules, end of
// stylesheet) and report messages with the severity configured for them.
package csslint

import (
	"sort"
	"strings"
)

// Config is the read-only view of a resolved rule configuration.
type Config interface {
	// Enabled reports whether the rule with the given id should run.
	Enabled(id string) bool
	// Severity returns the severity configured for the rule.
	Severity(id string) Severity
}

// Rule describes one check of the catalog.
type Rule struct {
	ID       string
	Name     string
	Desc     string
	Browsers string
	init     func(rule *Rule, s *session)
}

// catalog is populated by rules.go.
var catalog []*Rule

func register(rules ...*Rule) {
	catalog = append(catalog, rules...)
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].ID < catalog[j].ID })
}

// Rules returns the full rule catalog sorted by id.
func Rules() []Rule {
	rules := make([]Rule, len(catalog))
	for i, r := range catalog {
		rules[i] = *r
	}
	return rules
}

// RuleIDs returns the ids of every rule in the catalog.
func RuleIDs() []string {
	ids := make([]string, len(catalog))
	for i, r := range catalog {
		ids[i] = r.ID
	}
	return ids
}

// Lookup returns the catalog rule with the given id.
func Lookup(id string) (Rule, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return *r, true
		}
	}
	return Rule{}, false
}

// Verify lints content with the rules enabled in cfg.
func Verify(content string, cfg Config) Result {
	s := &session{
		reporter: &reporter{
			cfg:   cfg,
			lines: strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n"),
		},
	}

	for _, rule := range catalog {
		if cfg.Enabled(rule.ID) {
			rule.init(rule, s)
		}
	}

	s.parse(content)

	messages := s.reporter.messages
	sortMessages(messages)
	return Result{Messages: messages}
}

// reporter collects messages for a single Verify call.
type reporter struct {
	cfg      Config
	lines    []string
	messages []Message
}

// report adds a positioned message with the rule's configured severity.
func (r *reporter) report(rule *Rule, line, col int, text string) {
	r.messages = append(r.messages, Message{
		Line:     line,
		Col:      col,
		Severity: r.cfg.Severity(rule.ID),
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Text:     text,
		Evidence: r.evidence(line),
	})
}

// error adds a positioned message that is always an error.
func (r *reporter) error(rule *Rule, line, col int, text string) {
	r.messages = append(r.messages, Message{
		Line:     line,
		Col:      col,
		Severity: SeverityError,
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Text:     text,
		Evidence: r.evidence(line),
	})
}

// rollup adds a file-level message.
func (r *reporter) rollup(rule *Rule, text string) {
	r.messages = append(r.messages, Message{
		Severity: r.cfg.Severity(rule.ID),
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Text:     text,
		Rollup:   true,
	})
}

func (r *reporter) evidence(line int) string {
	if line < 1 || line > len(r.lines) {
		return ""
	}
	return r.lines[line-1]
}
