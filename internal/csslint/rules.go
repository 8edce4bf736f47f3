package csslint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Rollup thresholds
const (
	maxImportant = 10
	maxFloats    = 10
	maxFontSizes = 10
	maxFontFaces = 5
)

func init() {
	register(
		ruleErrors,
		ruleImportant,
		ruleEmptyRules,
		ruleZeroUnits,
		ruleIDs,
		ruleDuplicateProperties,
		ruleUniversalSelector,
		ruleImport,
		ruleBoxSizing,
		ruleOutlineNone,
		ruleKnownProperties,
		ruleFloats,
		ruleFontSizes,
		ruleFontFaces,
	)
}

var ruleErrors = &Rule{
	ID:       "errors",
	Name:     "Parsing Errors",
	Desc:     "This rule looks for recoverable syntax errors.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		s.parseErrors = append(s.parseErrors, func(line, col int, text string) {
			s.reporter.error(rule, line, col, text)
		})
	},
}

var ruleImportant = &Rule{
	ID:       "important",
	Name:     "Disallow !important",
	Desc:     "Be careful when using !important declaration",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		count := 0
		s.property = append(s.property, func(d *declaration) {
			if d.Important {
				count++
				s.reporter.report(rule, d.bangLine, d.bangCol, "Use of !important")
			}
		})
		s.endStylesheet = append(s.endStylesheet, func() {
			if count >= maxImportant {
				s.reporter.rollup(rule, fmt.Sprintf("Too many !important declarations (%d), try to use less than %d to avoid specificity issues.", count, maxImportant))
			}
		})
	},
}

var ruleEmptyRules = &Rule{
	ID:       "empty-rules",
	Name:     "Disallow empty rules",
	Desc:     "Rules without any properties specified should be removed.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		counts := make(map[*ruleSet]int)
		s.startRule = append(s.startRule, func(rs *ruleSet) {
			counts[rs] = 0
		})
		s.property = append(s.property, func(d *declaration) {
			if d.rule != nil {
				counts[d.rule]++
			}
		})
		s.endRule = append(s.endRule, func(rs *ruleSet) {
			if counts[rs] == 0 && !rs.Keyframe {
				s.reporter.report(rule, rs.Line, rs.Col, "Rule is empty.")
			}
			delete(counts, rs)
		})
	},
}

var ruleZeroUnits = &Rule{
	ID:       "zero-units",
	Name:     "Disallow units for 0 values",
	Desc:     "You don't need to specify units when a value is 0.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		s.property = append(s.property, func(d *declaration) {
			for _, v := range d.values {
				if v.tt != css.DimensionToken && v.tt != css.PercentageToken {
					continue
				}
				num, unit := splitDimension(v.text)
				if unit == "s" || unit == "ms" {
					continue
				}
				if f, err := strconv.ParseFloat(num, 64); err == nil && f == 0 {
					s.reporter.report(rule, v.line, v.col, "Values of 0 shouldn't have units specified.")
				}
			}
		})
	},
}

var ruleIDs = &Rule{
	ID:       "ids",
	Name:     "Disallow IDs in selectors",
	Desc:     "Selectors should not contain IDs.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		s.startRule = append(s.startRule, func(rs *ruleSet) {
			if rs.Keyframe {
				return
			}
			for _, sel := range rs.Selectors {
				switch n := sel.idCount(); {
				case n == 1:
					s.reporter.report(rule, sel.Line, sel.Col, "Don't use IDs in selectors.")
				case n > 1:
					s.reporter.report(rule, sel.Line, sel.Col, fmt.Sprintf("%d IDs in the selector, really?", n))
				}
			}
		})
	},
}

// propertyTrack remembers declarations seen in one block.
type propertyTrack struct {
	values map[string]string
	last   string
}

var ruleDuplicateProperties = &Rule{
	ID:       "duplicate-properties",
	Name:     "Disallow duplicate properties",
	Desc:     "Duplicate properties must appear one after the other.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		// The nil key tracks @font-face and @page blocks.
		tracks := make(map[*ruleSet]*propertyTrack)
		fresh := func() *propertyTrack {
			return &propertyTrack{values: make(map[string]string)}
		}

		s.startRule = append(s.startRule, func(rs *ruleSet) {
			tracks[rs] = fresh()
		})
		s.endRule = append(s.endRule, func(rs *ruleSet) {
			delete(tracks, rs)
		})
		s.atRules = append(s.atRules, func(*atRule) {
			tracks[nil] = fresh()
		})
		s.property = append(s.property, func(d *declaration) {
			track, ok := tracks[d.rule]
			if !ok {
				track = fresh()
				tracks[d.rule] = track
			}

			if prev, seen := track.values[d.Property]; seen && (track.last != d.Property || prev == d.Value) {
				s.reporter.report(rule, d.Line, d.Col, fmt.Sprintf("Duplicate property '%s' found.", d.Property))
			}
			track.values[d.Property] = d.Value
			track.last = d.Property
		})
	},
}

var ruleUniversalSelector = &Rule{
	ID:       "universal-selector",
	Name:     "Disallow universal selector",
	Desc:     "The universal selector (*) is known to be slow.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		s.startRule = append(s.startRule, func(rs *ruleSet) {
			if rs.Keyframe {
				return
			}
			for _, sel := range rs.Selectors {
				key := sel.keyCompound()
				if len(key) > 0 && key[0].tt == css.DelimToken && key[0].text == "*" {
					s.reporter.report(rule, sel.Line, sel.Col, rule.Desc)
				}
			}
		})
	},
}

var ruleImport = &Rule{
	ID:       "import",
	Name:     "Disallow @import",
	Desc:     "Don't use @import, use <link> instead.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		s.atRules = append(s.atRules, func(a *atRule) {
			if a.Name == "import" {
				s.reporter.report(rule, a.Line, a.Col, "@import prevents parallel downloads, use <link> instead.")
			}
		})
	},
}

var ruleBoxSizing = &Rule{
	ID:       "box-sizing",
	Name:     "Disallow use of box-sizing",
	Desc:     "The box-sizing properties isn't supported in IE6 and IE7.",
	Browsers: "IE6, IE7",
	init: func(rule *Rule, s *session) {
		s.property = append(s.property, func(d *declaration) {
			if d.Property == "box-sizing" {
				s.reporter.report(rule, d.Line, d.Col, "The box-sizing property isn't supported in IE6 and IE7.")
			}
		})
	},
}

// outlineTrack remembers the outline state of one rule set.
type outlineTrack struct {
	focus  bool
	count  int
	hidden *declaration
}

var ruleOutlineNone = &Rule{
	ID:       "outline-none",
	Name:     "Disallow outline: none",
	Desc:     "Use of outline: none or outline: 0 should be limited to :focus rules.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		tracks := make(map[*ruleSet]*outlineTrack)

		s.startRule = append(s.startRule, func(rs *ruleSet) {
			track := &outlineTrack{}
			for _, sel := range rs.Selectors {
				if sel.hasPseudo("focus") {
					track.focus = true
				}
			}
			tracks[rs] = track
		})
		s.property = append(s.property, func(d *declaration) {
			track, ok := tracks[d.rule]
			if !ok || d.rule.Keyframe {
				return
			}
			track.count++

			if d.Property != "outline" || (d.Value != "none" && d.Value != "0") {
				return
			}
			if !track.focus {
				s.reporter.report(rule, d.Line, d.Col, "Outlines should only be modified using :focus.")
				return
			}
			track.hidden = d
		})
		s.endRule = append(s.endRule, func(rs *ruleSet) {
			track := tracks[rs]
			delete(tracks, rs)
			if track == nil || !track.focus || track.hidden == nil || track.count != 1 {
				return
			}
			s.reporter.report(rule, track.hidden.Line, track.hidden.Col, "Outlines shouldn't be hidden unless other visual changes are made.")
		})
	},
}

var ruleKnownProperties = &Rule{
	ID:       "known-properties",
	Name:     "Require use of known properties",
	Desc:     "Properties should be known (listed in CSS3 specification) or be a vendor-prefixed property.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		s.property = append(s.property, func(d *declaration) {
			if !IsKnownProperty(d.Property) {
				s.reporter.report(rule, d.Line, d.Col, fmt.Sprintf("Unknown property '%s'.", d.Property))
			}
		})
	},
}

var ruleFloats = &Rule{
	ID:       "floats",
	Name:     "Disallow too many floats",
	Desc:     "This rule tests if the float property is used too many times",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		count := 0
		s.property = append(s.property, func(d *declaration) {
			if d.Property == "float" && !strings.EqualFold(d.Value, "none") {
				count++
			}
		})
		s.endStylesheet = append(s.endStylesheet, func() {
			if count >= maxFloats {
				s.reporter.rollup(rule, fmt.Sprintf("Too many floats (%d), you're probably using them for layout. Consider using a grid system instead.", count))
			}
		})
	},
}

var ruleFontSizes = &Rule{
	ID:       "font-sizes",
	Name:     "Disallow too many font sizes",
	Desc:     "Checks the number of font-size declarations.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		count := 0
		s.property = append(s.property, func(d *declaration) {
			if d.Property == "font-size" {
				count++
			}
		})
		s.endStylesheet = append(s.endStylesheet, func() {
			if count >= maxFontSizes {
				s.reporter.rollup(rule, fmt.Sprintf("Too many font-size declarations (%d), abstraction needed.", count))
			}
		})
	},
}

var ruleFontFaces = &Rule{
	ID:       "font-faces",
	Name:     "Don't use too many web fonts",
	Desc:     "Too many different web fonts in the same stylesheet.",
	Browsers: "All",
	init: func(rule *Rule, s *session) {
		count := 0
		s.atRules = append(s.atRules, func(a *atRule) {
			if a.Name == "font-face" {
				count++
			}
		})
		s.endStylesheet = append(s.endStylesheet, func() {
			if count > maxFontFaces {
				s.reporter.rollup(rule, fmt.Sprintf("Too many @font-face declarations (%d).", count))
			}
		})
	},
}

// splitDimension splits "1.5em" into ("1.5", "em") and "0%" into ("0", "%").
func splitDimension(text string) (string, string) {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for i < len(text) && (text[i] >= '0' && text[i] <= '9' || text[i] == '.') {
		i++
	}
	// Exponent: e3, e-3, E+3
	if i+1 < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if text[j] == '+' || text[j] == '-' {
			j++
		}
		if j < len(text) && text[j] >= '0' && text[j] <= '9' {
			i = j
			for i < len(text) && text[i] >= '0' && text[i] <= '9' {
				i++
			}
		}
	}
	return text[:i], strings.ToLower(text[i:])
}
