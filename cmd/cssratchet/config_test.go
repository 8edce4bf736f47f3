package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssratchet"
	"github.com/yacobolo/cssratchet/internal/csslint"
	"github.com/yacobolo/cssratchet/internal/regression"
	"github.com/yacobolo/cssratchet/internal/ruleset"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssratchet.yaml")
	configContent := `
verbose: true
files:
  - "web/**/*.css"
  - "legacy/site.css"
dest: out/lint.txt
baseline: out/base.txt
format: text
absolute-file-paths: true
diff-command: diff -u
csslintrc: .csslintrc
rules:
  "*": false
  important: 2
  zero-units: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildRatchetConfig(nil)
	require.NoError(t, err)

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"web/**/*.css", "legacy/site.css"}, cfg.Files)
	assert.Equal(t, "out/lint.txt", cfg.Dest)
	assert.Equal(t, "out/base.txt", cfg.Baseline)
	assert.Equal(t, "text", cfg.Format)
	assert.True(t, cfg.AbsoluteFilePaths)
	assert.Equal(t, "diff -u", cfg.DiffCommand)
	assert.Equal(t, ".csslintrc", cfg.CSSLintRC)
	assert.Equal(t, ruleset.Options{"*": false, "important": 2, "zero-units": true}, cfg.Rules)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssratchet.yaml"))

	cfg, err := buildRatchetConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Files)
	assert.Equal(t, "report/csslint.txt", cfg.Dest)
	assert.Equal(t, "report/csslint_base.txt", cfg.Baseline)
	assert.Equal(t, "compact", cfg.Format)
	assert.Equal(t, "diff -u -b", cfg.DiffCommand)
	assert.False(t, cfg.AbsoluteFilePaths)
	assert.False(t, cfg.UpdateBaseline)
	assert.Empty(t, cfg.Rules)
}

func TestInvalidConfigFile(t *testing.T) {
	resetKoanf()

	configPath := filepath.Join(t.TempDir(), ".cssratchet.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("dest: [unclosed"), 0644))

	err := loadConfigFromPath(configPath)
	require.ErrorIs(t, err, ruleset.ErrConfig)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssratchet.yaml")
	configContent := `
dest: from-file.txt
update-baseline: false
rules:
  important: 1
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CSSRATCHET_DEST", "from-env.txt")
	t.Setenv("CSSRATCHET_UPDATE_BASELINE", "true")
	t.Setenv("CSSRATCHET_RULES__IMPORTANT", "2")
	t.Setenv("CSSRATCHET_RULES__ZERO_UNITS", "false")

	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildRatchetConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env.txt", cfg.Dest)
	assert.True(t, cfg.UpdateBaseline)
	assert.Equal(t, ruleset.Options{"important": 2.0, "zero-units": false}, cfg.Rules)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CSSRATCHET_DEST", "dest"},
		{"CSSRATCHET_DIFF_COMMAND", "diff-command"},
		{"CSSRATCHET_ABSOLUTE_FILE_PATHS", "absolute-file-paths"},
		{"CSSRATCHET_RULES__ZERO_UNITS", "rules.zero-units"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestParseRuleValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"2", 2.0},
		{"1", 1.0},
		{"0", 0.0},
		{"true", true},
		{"false", false},
		{"error", "error"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRuleValue(tt.in))
		})
	}
}

func TestBuildRuleOptions_FlagsWin(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("rules", map[string]any{"ids": 1, "important": 2}))
	require.NoError(t, k.Set("rule", []string{"ids=false", " box-sizing = 2 "}))

	opts, err := buildRuleOptions()
	require.NoError(t, err)
	assert.Equal(t, ruleset.Options{"ids": false, "important": 2, "box-sizing": 2.0}, opts)
}

func TestBuildRuleOptions_FromEnv(t *testing.T) {
	resetKoanf()
	t.Setenv("CSSRATCHET_RULE", "important=2 ids=false")
	t.Setenv("CSSRATCHET_FILES", "web/**/*.css legacy.css")
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssratchet.yaml"))

	cfg, err := buildRatchetConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ruleset.Options{"important": 2.0, "ids": false}, cfg.Rules)
	assert.Equal(t, []string{"web/**/*.css", "legacy.css"}, cfg.Files)
}

func TestRuleFlag_KeepsCommas(t *testing.T) {
	resetKoanf()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addRuleFlag(fs)
	require.NoError(t, fs.Parse([]string{"--rule", "font-faces=a,b", "--rule", "ids=false"}))
	require.NoError(t, k.Load(posflag.Provider(fs, ".", k), nil))

	opts, err := buildRuleOptions()
	require.NoError(t, err)
	assert.Equal(t, ruleset.Options{"font-faces": "a,b", "ids": false}, opts)
}

func TestBuildRuleOptions_Invalid(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("rule", []string{"important"}))

	_, err := buildRuleOptions()
	require.ErrorIs(t, err, ruleset.ErrConfig)
}

func TestBuildRatchetConfig_ArgsReplaceFiles(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("files", []string{"from-config.css"}))

	cfg, err := buildRatchetConfig([]string{"a.css", "b/**/*.css"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.css", "b/**/*.css"}, cfg.Files)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssratchet.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "files:")
	assert.Contains(t, string(data), "baseline: report/csslint_base.txt")
	assert.Contains(t, string(data), "rules:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".cssratchet.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".cssratchet.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssratchet.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "dest: report/csslint.txt")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssratchet dev\n", out.String())
}

func TestRulesCommand(t *testing.T) {
	resetKoanf()
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"rules", "--rule", "important=2"})
	require.NoError(t, cmd.Execute())
}

func TestRunCommand_Ratchet(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not installed")
	}
	resetKoanf()
	dir := t.TempDir()
	chdir(t, dir)

	css := filepath.Join(dir, "site.css")
	require.NoError(t, os.WriteFile(css, []byte(".a { color: red !important; }\n"), 0644))

	args := []string{
		"run",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--dest", filepath.Join(dir, "report", "csslint.txt"),
		"--baseline", filepath.Join(dir, "report", "csslint_base.txt"),
		"--rule", "*=false",
		"--rule", "important=1",
		"--quiet",
		css,
	}

	// First run records the baseline.
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	_, err := os.Stat(filepath.Join(dir, "report", "csslint_base.txt"))
	require.NoError(t, err)

	// A new violation grows the report.
	require.NoError(t, os.WriteFile(css, []byte(".a { color: red !important; }\n.b { color: blue !important; }\n"), 0644))
	resetKoanf()
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	require.ErrorIs(t, err, regression.ErrRegression)
	assert.Equal(t, cssratchet.ExitRegression, cssratchet.ExitCode(err))
}

func TestSelectRules(t *testing.T) {
	all, err := selectRules(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(csslint.Rules()))

	picked, err := selectRules([]string{"zero-units", "important"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "zero-units", picked[0].ID)
	assert.Equal(t, "important", picked[1].ID)
	assert.NotEmpty(t, picked[1].Desc)

	_, err = selectRules([]string{"no-such-rule"})
	require.ErrorIs(t, err, ruleset.ErrConfig)
}
