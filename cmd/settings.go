package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var settingsFlags cli.CommandFlags

// settingsCmd represents the settings command.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current enablement settings",
	Long: `Show the settings a running featgate server is operating on: the
explicit per-feature rules and the enabled feature groups from
settings.yaml, as the server currently sees them.

Use 'featgate rule' and 'featgate groups' to change them.

Examples:
  featgate settings
  featgate settings -o yaml

Note: The server must be running (use 'featgate serve') before using this command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &settingsFlags, "settings_get", nil)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	cli.RegisterCommonFlags(settingsCmd, &settingsFlags)
}
