package cmd

import (
	"fmt"

	"featgate/internal/api"
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var ruleFlags cli.CommandFlags

// ruleCmd groups the rule subcommands.
var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage per-feature enablement rules",
	Long: `Manage the explicit per-feature rules in settings.yaml.

A rule of 'always' enables a feature regardless of group selection, 'never'
disables it unless it is in the required group, and 'default' makes it
follow group eligibility. Features without an explicit rule use their
default rule.

A running server picks rule changes up immediately and reconciles.`,
}

// ruleSetCmd sets an explicit rule for a feature.
var ruleSetCmd = &cobra.Command{
	Use:   "set <feature> <always|never|default>",
	Short: "Set an explicit rule for a feature",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return []string{api.RuleAlways, api.RuleNever, api.RuleDefault}, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		feature, rule := args[0], args[1]
		if !api.ValidRule(rule) {
			return fmt.Errorf("invalid rule %q: must be one of always, never, default", rule)
		}
		return executeControlTool(cmd, &ruleFlags, "rule_set", map[string]interface{}{
			"feature": feature,
			"rule":    rule,
		})
	},
}

// ruleClearCmd removes the explicit rule for a feature.
var ruleClearCmd = &cobra.Command{
	Use:                   "clear <feature>",
	Short:                 "Remove the explicit rule so the feature's default applies",
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &ruleFlags, "rule_clear", map[string]interface{}{
			"feature": args[0],
		})
	},
}

func init() {
	rootCmd.AddCommand(ruleCmd)
	ruleCmd.AddCommand(ruleSetCmd)
	ruleCmd.AddCommand(ruleClearCmd)
	cli.RegisterCommonFlags(ruleCmd, &ruleFlags)
}
