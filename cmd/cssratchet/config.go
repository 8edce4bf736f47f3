package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssratchet"
	"github.com/yacobolo/cssratchet/internal/baseline"
	"github.com/yacobolo/cssratchet/internal/csslint"
	"github.com/yacobolo/cssratchet/internal/regression"
	"github.com/yacobolo/cssratchet/internal/report"
	"github.com/yacobolo/cssratchet/internal/ruleset"
)

const (
	defaultConfigPath  = ".cssratchet.yaml"
	defaultDest        = "report/csslint.txt"
	defaultBaseline    = baseline.DefaultBasePath
	defaultFormat      = report.DefaultFormat
	defaultDiffCommand = regression.DefaultDiffCommand
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (only flags that were explicitly set override loaded keys)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("%w: loading config file %s: %v", ruleset.ErrConfig, configPath, err)
		}
	}

	// 2. Environment variables (CSSRATCHET_* prefix)
	if err := k.Load(env.Provider("CSSRATCHET_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps environment variable names to config keys:
//
//	CSSRATCHET_DEST -> dest
//	CSSRATCHET_DIFF_COMMAND -> diff-command
//	CSSRATCHET_RULES__ZERO_UNITS -> rules.zero-units
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "CSSRATCHET_"))
	parts := strings.Split(key, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

// buildRatchetConfig constructs the library's Config struct from koanf state.
// Positional patterns replace the configured file list.
func buildRatchetConfig(args []string) (cssratchet.Config, error) {
	rules, err := buildRuleOptions()
	if err != nil {
		return cssratchet.Config{}, err
	}

	files := args
	if len(files) == 0 {
		files = getStrings("files")
	}

	return cssratchet.Config{
		Files:             files,
		Dest:              getString("dest", defaultDest),
		Baseline:          getString("baseline", defaultBaseline),
		CSSLintRC:         getString("csslintrc", ""),
		Rules:             rules,
		Format:            getString("format", defaultFormat),
		AbsoluteFilePaths: getBool("absolute-file-paths", false),
		UpdateBaseline:    getBool("update-baseline", false),
		DiffCommand:       getString("diff-command", defaultDiffCommand),
	}, nil
}

// buildRuleOptions merges the "rules" map of the config file and
// environment with repeated --rule id=value flags. Flags win.
func buildRuleOptions() (ruleset.Options, error) {
	opts := ruleset.Options{}
	for id, value := range k.Cut("rules").Raw() {
		if s, ok := value.(string); ok {
			opts[id] = parseRuleValue(s)
			continue
		}
		opts[id] = value
	}

	for _, entry := range getStrings("rule") {
		id, value, ok := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: --rule %q must be id=value", ruleset.ErrConfig, entry)
		}
		opts[id] = parseRuleValue(strings.TrimSpace(value))
	}

	return opts, nil
}

// parseRuleValue turns textual settings into the values a csslintrc would
// hold: "2" -> 2, "false" -> false, anything else stays a string.
func parseRuleValue(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// resolveRules applies the configured csslintrc and inline rules to the catalog.
func resolveRules() (ruleset.RuleConfig, error) {
	inline, err := buildRuleOptions()
	if err != nil {
		return ruleset.RuleConfig{}, err
	}

	external, err := ruleset.LoadRC(getString("csslintrc", ""))
	if err != nil {
		return ruleset.RuleConfig{}, err
	}

	return ruleset.Resolve(csslint.RuleIDs(), ruleset.Merge(inline, external)), nil
}

// getString returns the loaded value for key or defaultVal when it is unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getStrings returns a list value. A plain string, as set through an
// environment variable, is split on whitespace.
func getStrings(key string) []string {
	if s, ok := k.Get(key).(string); ok {
		return strings.Fields(s)
	}
	return k.Strings(key)
}

// getBool returns the loaded value for key or defaultVal when it is unset.
func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}
