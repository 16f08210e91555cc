package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var groupsFlags cli.CommandFlags

// groupsCmd groups the enabled-groups subcommands.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage the enabled-groups selection",
	Long: `Manage which feature groups are enabled.

With a selection in place, features with a 'default' rule are only enabled
when one of their groups is selected. Without a selection every feature is
group-eligible. Members of the required group are enabled either way.`,
}

// groupsSetCmd replaces the enabled-groups selection.
var groupsSetCmd = &cobra.Command{
	Use:   "set [group...]",
	Short: "Replace the enabled-groups selection",
	Long: `Replace the enabled-groups selection with the given group names.

Passing no names selects no groups at all, which disables every
default-rule feature outside the required group. Use 'featgate groups
clear' to remove the selection entirely instead.

Examples:
  featgate groups set core experimental
  featgate groups set`,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups := make([]interface{}, len(args))
		for i, name := range args {
			groups[i] = name
		}
		return executeControlTool(cmd, &groupsFlags, "groups_set", map[string]interface{}{
			"groups": groups,
		})
	},
}

// groupsClearCmd removes the selection so every feature is group-eligible.
var groupsClearCmd = &cobra.Command{
	Use:                   "clear",
	Short:                 "Remove the selection so every feature is group-eligible",
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &groupsFlags, "groups_set", nil)
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.AddCommand(groupsSetCmd)
	groupsCmd.AddCommand(groupsClearCmd)
	cli.RegisterCommonFlags(groupsCmd, &groupsFlags)
}
