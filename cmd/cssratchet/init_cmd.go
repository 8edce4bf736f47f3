package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssratchet.yaml config file",
	Long:  `Create a .cssratchet.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created " + defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssratchet configuration
# Docs: https://github.com/yacobolo/cssratchet

verbose: false

# Stylesheets to lint (glob patterns or paths)
files:
  - "web/styles/**/*.css"

dest: report/csslint.txt
baseline: report/csslint_base.txt # commit this file
format: compact                   # compact | text | json
absolute-file-paths: false
diff-command: diff -u -b

# Optional csslintrc (JSON with comments); rules below win over it
# csslintrc: .csslintrc

# Rule settings: false = off, 1 = warning, 2 = error
# "*": false disables every rule not listed
rules:
  important: 2
  ids: 1
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
