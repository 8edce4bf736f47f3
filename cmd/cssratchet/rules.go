package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssratchet/internal/csslint"
	"github.com/yacobolo/cssratchet/internal/ruleset"
	"github.com/yacobolo/cssratchet/internal/term"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [rule-id...]",
	Short: "List the rule catalog with the effective setting of each rule",
	Long: `Print every rule the engine knows together with the setting it gets after
the csslintrc file and inline overrides are applied. Naming rule ids limits
the listing to those rules and prints their description.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		rules, err := resolveRules()
		if err != nil {
			return err
		}

		listed, err := selectRules(args)
		if err != nil {
			return err
		}

		useColors := term.ShouldUseColors(getBool("color", false))
		for _, rule := range listed {
			style, setting := term.StyleGray, "off"
			if rules.Enabled(rule.ID) {
				style, setting = term.StyleYellow, "warning"
				if rules.Severity(rule.ID) == csslint.SeverityError {
					style, setting = term.StyleRed, "error"
				}
			}
			// Pad before styling so escape codes do not break the columns.
			fmt.Fprintf(os.Stdout, "%-22s %s %s\n", rule.ID, term.RenderStyle(style, fmt.Sprintf("%-7s", setting), useColors), rule.Name)
			if len(args) > 0 {
				fmt.Fprintf(os.Stdout, "%-22s %s\n", "", term.RenderStyle(term.StyleGray, rule.Desc, useColors))
			}
		}
		return nil
	},
}

// selectRules returns the named catalog rules in argument order, or the whole
// catalog when no ids are given.
func selectRules(ids []string) ([]csslint.Rule, error) {
	if len(ids) == 0 {
		return csslint.Rules(), nil
	}

	selected := make([]csslint.Rule, 0, len(ids))
	for _, id := range ids {
		rule, ok := csslint.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown rule %q", ruleset.ErrConfig, id)
		}
		selected = append(selected, rule)
	}
	return selected, nil
}
