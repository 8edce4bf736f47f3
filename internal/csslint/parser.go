package csslint

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is a lexer token with the position of its first character.
type token struct {
	tt   css.TokenType
	text string
	line int
	col  int
}

// Selector is one comma-separated selector of a rule set.
type Selector struct {
	Text   string
	Line   int
	Col    int
	tokens []token
}

// ruleSet is a qualified rule: selectors followed by a declaration block.
type ruleSet struct {
	Selectors []Selector
	Line      int
	Col       int
	Keyframe  bool // "from", "50%" and friends inside @keyframes
}

// declaration is a single "property: value" pair.
type declaration struct {
	Property  string // lowercased
	Value     string // without !important
	Important bool
	Line      int
	Col       int
	values    []token // value tokens, whitespace dropped
	rule      *ruleSet
	bangLine  int
	bangCol   int
}

// atRule is an at-rule with its prelude.
type atRule struct {
	Name    string // lowercased, without "@"
	Prelude string
	Line    int
	Col     int
}

// session holds the event listeners registered by enabled rules.
type session struct {
	reporter      *reporter
	startRule     []func(*ruleSet)
	endRule       []func(*ruleSet)
	property      []func(*declaration)
	atRules       []func(*atRule)
	endStylesheet []func()
	parseErrors   []func(line, col int, text string)
}

// groupingAtRules contain nested rule sets rather than declarations.
var groupingAtRules = map[string]bool{
	"media":         true,
	"supports":      true,
	"document":      true,
	"-moz-document": true,
	"layer":         true,
	"container":     true,
	"scope":         true,
}

// parserState walks the token stream and fires session events.
type parserState struct {
	s    *session
	toks []token
	pos  int
	eof  token // position just past the last token
}

func (s *session) parse(content string) {
	toks, end := tokenize(content)
	p := &parserState{s: s, toks: toks, eof: end}
	p.parseRuleList(false, false)

	for _, fn := range s.endStylesheet {
		fn()
	}
}

// tokenize lexes content, dropping comments and recording positions.
func tokenize(content string) ([]token, token) {
	lexer := css.NewLexer(parse.NewInputString(content))
	line, col := 1, 1

	var toks []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		text := string(data)
		if tt != css.CommentToken {
			toks = append(toks, token{tt: tt, text: text, line: line, col: col})
		}
		line, col = advance(text, line, col)
	}

	return toks, token{tt: css.ErrorToken, line: line, col: col}
}

// advance moves a line/column position past text.
func advance(text string, line, col int) (int, int) {
	for _, r := range text {
		switch r {
		case '\n':
			line++
			col = 1
		case '\r':
		default:
			col++
		}
	}
	return line, col
}

func (p *parserState) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return p.eof, false
	}
	return p.toks[p.pos], true
}

func (p *parserState) next() token {
	t, _ := p.peek()
	p.pos++
	return t
}

func (p *parserState) skipWhitespace() {
	for p.pos < len(p.toks) && p.toks[p.pos].tt == css.WhitespaceToken {
		p.pos++
	}
}

func (p *parserState) parseError(line, col int, text string) {
	for _, fn := range p.s.parseErrors {
		fn(line, col, text)
	}
}

// parseRuleList parses rule sets and at-rules until EOF, or until the
// closing brace when nested.
func (p *parserState) parseRuleList(nested, keyframes bool) {
	for {
		p.skipWhitespace()
		t, ok := p.peek()
		if !ok {
			if nested {
				p.parseError(t.line, t.col, fmt.Sprintf("Expected RBRACE at line %d, col %d.", t.line, t.col))
			}
			return
		}

		switch t.tt {
		case css.CDOToken, css.CDCToken, css.SemicolonToken:
			p.pos++
		case css.RightBraceToken:
			p.pos++
			if nested {
				return
			}
			p.parseError(t.line, t.col, fmt.Sprintf("Unexpected token '}' at line %d, col %d.", t.line, t.col))
		case css.AtKeywordToken:
			p.parseAtRule()
		default:
			p.parseQualifiedRule(nested, keyframes)
		}
	}
}

// parseAtRule parses "@name prelude;" or "@name prelude { ... }".
func (p *parserState) parseAtRule() {
	at := p.next()
	name := strings.ToLower(strings.TrimPrefix(at.text, "@"))

	var prelude strings.Builder
	depth := 0
	for {
		t, ok := p.peek()
		if !ok {
			break
		}
		if depth == 0 && (t.tt == css.SemicolonToken || t.tt == css.LeftBraceToken || t.tt == css.RightBraceToken) {
			break
		}
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		prelude.WriteString(t.text)
		p.pos++
	}

	event := &atRule{
		Name:    name,
		Prelude: strings.TrimSpace(prelude.String()),
		Line:    at.line,
		Col:     at.col,
	}
	for _, fn := range p.s.atRules {
		fn(event)
	}

	t, ok := p.peek()
	if !ok {
		return
	}

	switch t.tt {
	case css.SemicolonToken:
		p.pos++
	case css.LeftBraceToken:
		p.pos++
		switch {
		case groupingAtRules[name]:
			p.parseRuleList(true, false)
		case strings.HasSuffix(name, "keyframes"):
			p.parseRuleList(true, true)
		default:
			// @font-face, @page, @viewport: a bare declaration block
			p.parseDeclarations(nil, t)
		}
	}
}

// parseQualifiedRule parses "selectors { declarations }".
func (p *parserState) parseQualifiedRule(nested, keyframes bool) {
	start, _ := p.peek()

	var selectorTokens []token
	depth := 0
	for {
		t, ok := p.peek()
		if !ok {
			p.parseError(start.line, start.col, fmt.Sprintf("Expected LBRACE at line %d, col %d.", t.line, t.col))
			return
		}

		if depth == 0 {
			switch t.tt {
			case css.LeftBraceToken:
				p.pos++
				p.parseRuleBody(selectorTokens, start, keyframes)
				return
			case css.SemicolonToken, css.RightBraceToken:
				p.parseError(start.line, start.col, fmt.Sprintf("Expected LBRACE at line %d, col %d.", t.line, t.col))
				// A nested block owns its closing brace
				if t.tt == css.SemicolonToken || !nested {
					p.pos++
				}
				return
			}
		}

		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		selectorTokens = append(selectorTokens, t)
		p.pos++
	}
}

func (p *parserState) parseRuleBody(selectorTokens []token, start token, keyframes bool) {
	rs := &ruleSet{
		Selectors: splitSelectors(selectorTokens),
		Line:      start.line,
		Col:       start.col,
		Keyframe:  keyframes,
	}

	for _, fn := range p.s.startRule {
		fn(rs)
	}

	p.parseDeclarations(rs, start)

	for _, fn := range p.s.endRule {
		fn(rs)
	}
}

// parseDeclarations parses a declaration block up to and including "}".
// rs is nil for at-rule blocks such as @font-face.
func (p *parserState) parseDeclarations(rs *ruleSet, open token) {
	for {
		p.skipWhitespace()
		t, ok := p.peek()
		if !ok {
			p.parseError(t.line, t.col, fmt.Sprintf("Expected RBRACE at line %d, col %d.", t.line, t.col))
			return
		}

		switch t.tt {
		case css.SemicolonToken:
			p.pos++
		case css.RightBraceToken:
			p.pos++
			return
		case css.AtKeywordToken:
			p.parseAtRule()
		case css.IdentToken, css.CustomPropertyNameToken:
			p.parseDeclaration(rs)
		default:
			p.parseError(t.line, t.col, fmt.Sprintf("Unexpected token '%s' at line %d, col %d.", t.text, t.line, t.col))
			p.skipDeclaration()
		}
	}
}

// parseDeclaration parses "name: value [!important]" without the terminator.
func (p *parserState) parseDeclaration(rs *ruleSet) {
	name := p.next()
	p.skipWhitespace()

	t, ok := p.peek()
	if !ok || t.tt != css.ColonToken {
		p.parseError(t.line, t.col, fmt.Sprintf("Expected COLON at line %d, col %d.", t.line, t.col))
		p.skipDeclaration()
		return
	}
	p.pos++

	var raw []token
	depth := 0
	for {
		t, ok := p.peek()
		if !ok {
			break
		}
		if depth == 0 && (t.tt == css.SemicolonToken || t.tt == css.RightBraceToken) {
			break
		}
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		}
		raw = append(raw, t)
		p.pos++
	}

	decl := &declaration{
		Property: strings.ToLower(name.text),
		Line:     name.line,
		Col:      name.col,
		rule:     rs,
	}
	raw = decl.stripImportant(raw)

	var value strings.Builder
	for _, v := range raw {
		value.WriteString(v.text)
		if v.tt != css.WhitespaceToken {
			decl.values = append(decl.values, v)
		}
	}
	decl.Value = strings.TrimSpace(value.String())

	if decl.Value == "" {
		p.parseError(name.line, name.col, fmt.Sprintf("Expected a value for '%s' at line %d, col %d.", name.text, name.line, name.col))
		return
	}

	for _, fn := range p.s.property {
		fn(decl)
	}
}

// stripImportant removes a trailing "!important" from the value tokens.
func (d *declaration) stripImportant(raw []token) []token {
	i := len(raw) - 1
	for i >= 0 && raw[i].tt == css.WhitespaceToken {
		i--
	}
	if i < 0 || raw[i].tt != css.IdentToken || !strings.EqualFold(raw[i].text, "important") {
		return raw
	}

	j := i - 1
	for j >= 0 && raw[j].tt == css.WhitespaceToken {
		j--
	}
	if j < 0 || raw[j].tt != css.DelimToken || raw[j].text != "!" {
		return raw
	}

	d.Important = true
	d.bangLine, d.bangCol = raw[j].line, raw[j].col
	return raw[:j]
}

// skipDeclaration skips to the next ";" (consumed) or "}" (left in place).
func (p *parserState) skipDeclaration() {
	depth := 0
	for {
		t, ok := p.peek()
		if !ok {
			return
		}
		if depth == 0 {
			if t.tt == css.SemicolonToken {
				p.pos++
				return
			}
			if t.tt == css.RightBraceToken {
				return
			}
		}
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		}
		p.pos++
	}
}

// splitSelectors splits a selector list on top-level commas.
func splitSelectors(toks []token) []Selector {
	var selectors []Selector
	var current []token
	depth := 0

	flush := func() {
		current = trimWhitespace(current)
		if len(current) == 0 {
			return
		}
		var text strings.Builder
		for _, t := range current {
			text.WriteString(t.text)
		}
		selectors = append(selectors, Selector{
			Text:   text.String(),
			Line:   current[0].line,
			Col:    current[0].col,
			tokens: current,
		})
		current = nil
	}

	for _, t := range toks {
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				flush()
				continue
			}
		}
		current = append(current, t)
	}
	flush()

	return selectors
}

func trimWhitespace(toks []token) []token {
	for len(toks) > 0 && toks[0].tt == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// idCount returns the number of id selectors outside functional pseudo-classes.
func (sel Selector) idCount() int {
	count, depth := 0, 0
	for _, t := range sel.tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		case css.HashToken:
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

// keyCompound returns the rightmost compound selector.
func (sel Selector) keyCompound() []token {
	start, depth := 0, 0
	for i, t := range sel.tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.WhitespaceToken:
			if depth == 0 {
				start = i + 1
			}
		case css.DelimToken:
			if depth == 0 && (t.text == ">" || t.text == "+" || t.text == "~") {
				start = i + 1
			}
		}
	}
	return trimWhitespace(sel.tokens[start:])
}

// hasPseudo reports whether the key compound carries the pseudo-class name.
func (sel Selector) hasPseudo(name string) bool {
	key := sel.keyCompound()
	for i := 0; i+1 < len(key); i++ {
		if key[i].tt == css.ColonToken && key[i+1].tt == css.IdentToken && strings.EqualFold(key[i+1].text, name) {
			return true
		}
	}
	return false
}
