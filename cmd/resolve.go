package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var resolveFlags cli.CommandFlags

// resolveCmd explains the configured enablement outcome without changing
// any state.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Explain the enablement outcome for every feature",
	Long: `Resolve the configured enablement and show, per feature, the effective
rule, whether it is enabled, and which clause decided the outcome
(required-group membership, an explicit rule, or group eligibility).

Nothing is activated or deactivated; this is a dry run of the decision.

Examples:
  featgate resolve
  featgate resolve -o yaml`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &resolveFlags, "feature_resolve", nil)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	cli.RegisterCommonFlags(resolveCmd, &resolveFlags)
}
