package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var serializeFlags cli.CommandFlags

// serializeCmd requests state persistence for every active feature.
var serializeCmd = &cobra.Command{
	Use:   "serialize",
	Short: "Persist the state of every active feature",
	Long: `Request state persistence for every feature the controller tracks as
active and the host still reports active. A feature whose persistence fails
is logged on the server; the remaining features are still attempted.

The server also serializes periodically and on shutdown; this command
forces a pass in between.

Examples:
  featgate serialize`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &serializeFlags, "feature_serialize", nil)
	},
}

func init() {
	rootCmd.AddCommand(serializeCmd)
	cli.RegisterCommonFlags(serializeCmd, &serializeFlags)
}
