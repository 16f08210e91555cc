package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var reconcileFlags cli.CommandFlags

// reconcileCmd forces one reconciliation pass on the running controller.
// Reconciliation also happens automatically on every settings change; this
// command exists for scripting and for recovering from failed activations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one reconciliation pass against the host",
	Long: `Run one reconciliation pass: the configured enablement is resolved and the
host is driven to match it, activating missing features before deactivating
surplus ones. The result lists what changed and what failed.

Reconciliation is idempotent; running it again with unchanged configuration
does nothing.

Examples:
  featgate reconcile
  featgate reconcile -o json`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &reconcileFlags, "feature_reconcile", nil)
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	cli.RegisterCommonFlags(reconcileCmd, &reconcileFlags)
}
