// Package ruleset resolves the final rule configuration from the engine's
// rule catalog, a csslintrc file and inline options.
package ruleset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tailscale/hujson"

	"github.com/yacobolo/cssratchet/internal/csslint"
)

// ErrConfig indicates a malformed rule configuration source.
var ErrConfig = errors.New("invalid rule configuration")

// WildcardKey disables every rule that is not explicitly enabled when set to false.
const WildcardKey = "*"

// rcKey names the csslintrc option itself; it is never a rule.
const rcKey = "csslintrc"

// Options maps rule ids to raw setting values (bool, number, string or payload).
type Options map[string]any

// LoadRC reads a csslintrc file. Comments and trailing commas are allowed.
// An empty path yields empty options.
func LoadRC(path string) (Options, error) {
	if path == "" {
		return Options{}, nil
	}

	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}

	return ParseRC(data, path)
}

// ParseRC decodes csslintrc content. name is only used in error messages.
func ParseRC(data []byte, name string) (Options, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, name, err)
	}

	opts := Options{}
	if err := json.Unmarshal(standard, &opts); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrConfig, name, err)
	}
	delete(opts, rcKey)

	return opts, nil
}

// Merge combines csslintrc options with inline options. Inline values win
// on key collision.
func Merge(inline, external Options) Options {
	merged := make(Options, len(inline)+len(external))
	for k, v := range external {
		merged[k] = v
	}
	for k, v := range inline {
		merged[k] = v
	}
	delete(merged, rcKey)
	return merged
}

// Resolve computes the final rule configuration from the catalog and the
// merged options. It does not modify opts.
func Resolve(catalog []string, opts Options) RuleConfig {
	wildcard, hasWildcard := opts[WildcardKey]
	defaultDisabled := hasWildcard && wildcard == false

	settings := make(map[string]any, len(catalog))
	for _, id := range catalog {
		if Truthy(opts[id]) || !defaultDisabled {
			settings[id] = 1
		}
	}

	for id, value := range opts {
		if id == WildcardKey || id == rcKey {
			continue
		}
		if !Truthy(value) {
			delete(settings, id)
			continue
		}
		settings[id] = value
	}

	return RuleConfig{settings: settings}
}

// Truthy reports whether a setting value enables a rule: false, nil, zero
// numbers and empty strings are falsy, everything else is truthy.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// RuleConfig is the resolved, immutable rule configuration.
type RuleConfig struct {
	settings map[string]any
}

var _ csslint.Config = RuleConfig{}

// Enabled reports whether the rule is part of the configuration.
func (c RuleConfig) Enabled(id string) bool {
	_, ok := c.settings[id]
	return ok
}

// Value returns the raw setting of a rule.
func (c RuleConfig) Value(id string) (any, bool) {
	v, ok := c.settings[id]
	return v, ok
}

// Severity maps a setting of 2 to an error; every other enabled setting is a warning.
func (c RuleConfig) Severity(id string) csslint.Severity {
	if isTwo(c.settings[id]) {
		return csslint.SeverityError
	}
	return csslint.SeverityWarning
}

// IDs returns the enabled rule ids in sorted order.
func (c RuleConfig) IDs() []string {
	ids := make([]string, 0, len(c.settings))
	for id := range c.settings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of enabled rules.
func (c RuleConfig) Len() int {
	return len(c.settings)
}

func isTwo(v any) bool {
	switch val := v.(type) {
	case float64:
		return val == 2
	case int:
		return val == 2
	case int64:
		return val == 2
	case string:
		return val == "2" || val == "error"
	default:
		return false
	}
}
