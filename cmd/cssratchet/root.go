package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "cssratchet [patterns...]",
	Short: "CSS lint ratchet for build pipelines",
	Long: `Lint stylesheets, write the report and compare it with an accepted baseline.
The run fails only when the report grows and differs from the baseline, so
existing violations are tolerated and new ones are rejected.`,
	// Default behavior: run the ratchet when no subcommand is given.
	// loadConfig is called here because PreRunE of runCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runRatchet(cmd, args)
	},
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print every file and debug logs")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().String("csslintrc", "", "csslintrc file with rule settings")
	addRuleFlag(rootCmd.PersistentFlags())

	addRunFlags(rootCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// addRuleFlag registers --rule. Each occurrence is kept whole so payloads
// may contain commas.
func addRuleFlag(fs *pflag.FlagSet) {
	fs.StringArray("rule", nil, "Inline rule override id=value (repeatable, wins over csslintrc)")
}
