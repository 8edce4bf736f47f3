package csslint

import "strings"

// knownProperties is the set of standard CSS property names
var knownProperties = map[string]struct{}{
	// Visual
	"background":            {},
	"background-attachment": {},
	"background-clip":       {},
	"background-color":      {},
	"background-image":      {},
	"background-origin":     {},
	"background-position":   {},
	"background-repeat":     {},
	"background-size":       {},
	"color":                 {},
	"border":                {},
	"border-collapse":       {},
	"border-color":          {},
	"border-image":          {},
	"border-radius":         {},
	"border-spacing":        {},
	"border-style":          {},
	"border-width":          {},
	"border-top":            {},
	"border-right":          {},
	"border-bottom":         {},
	"border-left":           {},
	"border-inline":         {},
	"border-block":          {},
	"box-shadow":            {},
	"opacity":               {},
	"outline":               {},
	"outline-color":         {},
	"outline-offset":        {},
	"outline-style":         {},
	"outline-width":         {},
	"visibility":            {},
	"cursor":                {},
	"fill":                  {},
	"stroke":                {},
	"accent-color":          {},
	"caret-color":           {},
	"appearance":            {},

	// Layout
	"display":               {},
	"box-sizing":            {},
	"float":                 {},
	"clear":                 {},
	"flex":                  {},
	"flex-direction":        {},
	"flex-flow":             {},
	"flex-wrap":             {},
	"flex-grow":             {},
	"flex-shrink":           {},
	"flex-basis":            {},
	"order":                 {},
	"justify-content":       {},
	"justify-items":         {},
	"justify-self":          {},
	"align-items":           {},
	"align-self":            {},
	"align-content":         {},
	"place-items":           {},
	"place-content":         {},
	"gap":                   {},
	"row-gap":               {},
	"column-gap":            {},
	"grid":                  {},
	"grid-area":             {},
	"grid-template":         {},
	"grid-template-columns": {},
	"grid-template-rows":    {},
	"grid-template-areas":   {},
	"grid-auto-flow":        {},
	"grid-auto-columns":     {},
	"grid-auto-rows":        {},
	"grid-column":           {},
	"grid-row":              {},
	"position":              {},
	"inset":                 {},
	"top":                   {},
	"right":                 {},
	"bottom":                {},
	"left":                  {},
	"width":                 {},
	"height":                {},
	"inline-size":           {},
	"block-size":            {},
	"min-width":             {},
	"min-height":            {},
	"max-width":             {},
	"max-height":            {},
	"padding":               {},
	"padding-top":           {},
	"padding-right":         {},
	"padding-bottom":        {},
	"padding-left":          {},
	"margin":                {},
	"margin-top":            {},
	"margin-right":          {},
	"margin-bottom":         {},
	"margin-left":           {},
	"overflow":              {},
	"overflow-x":            {},
	"overflow-y":            {},
	"z-index":               {},
	"aspect-ratio":          {},
	"object-fit":            {},
	"object-position":       {},
	"vertical-align":        {},
	"table-layout":          {},
	"caption-side":          {},
	"empty-cells":           {},
	"columns":               {},
	"column-count":          {},
	"column-width":          {},
	"resize":                {},
	"zoom":                  {},

	// Typography
	"font":                 {},
	"font-family":          {},
	"font-size":            {},
	"font-weight":          {},
	"font-style":           {},
	"font-variant":         {},
	"font-variant-numeric": {},
	"font-stretch":         {},
	"line-height":          {},
	"letter-spacing":       {},
	"word-spacing":         {},
	"text-align":           {},
	"text-decoration":      {},
	"text-indent":          {},
	"text-shadow":          {},
	"text-transform":       {},
	"text-overflow":        {},
	"white-space":          {},
	"word-break":           {},
	"word-wrap":            {},
	"overflow-wrap":        {},
	"hyphens":              {},
	"direction":            {},
	"unicode-bidi":         {},
	"writing-mode":         {},

	// Effects
	"transition":                 {},
	"transition-property":        {},
	"transition-duration":        {},
	"transition-timing-function": {},
	"transition-delay":           {},
	"transform":                  {},
	"transform-origin":           {},
	"animation":                  {},
	"animation-name":             {},
	"animation-duration":         {},
	"animation-timing-function":  {},
	"animation-delay":            {},
	"animation-iteration-count":  {},
	"animation-direction":        {},
	"animation-fill-mode":        {},
	"filter":                     {},
	"backdrop-filter":            {},
	"mix-blend-mode":             {},
	"clip-path":                  {},
	"mask":                       {},
	"will-change":                {},
	"pointer-events":             {},
	"user-select":                {},

	// Content
	"content":             {},
	"quotes":              {},
	"counter-reset":       {},
	"counter-increment":   {},
	"list-style":          {},
	"list-style-type":     {},
	"list-style-image":    {},
	"list-style-position": {},

	// @font-face descriptors
	"src":           {},
	"font-display":  {},
	"unicode-range": {},
}

// vendorPrefixes are always accepted by known-properties
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// IsKnownProperty reports whether name is a recognized CSS property.
// Vendor-prefixed and custom properties are always known.
func IsKnownProperty(name string) bool {
	name = strings.ToLower(name)
	if strings.HasPrefix(name, "--") {
		return true
	}
	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	_, ok := knownProperties[name]
	return ok
}
