package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var statusFlags cli.CommandFlags

// statusCmd shows the lifecycle controller state and the active feature set.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the controller state and the active features",
	Long: `Show the lifecycle controller's current state, the features it tracks as
active (in activation order), and the time of the last reconciliation.

Examples:
  featgate status
  featgate status -o json`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeControlTool(cmd, &statusFlags, "controller_status", nil)
	},
}

// executeControlTool runs one control tool with the shared connect /
// execute / close choreography used by the simple commands.
func executeControlTool(cmd *cobra.Command, flags *cli.CommandFlags, toolName string, args map[string]interface{}) error {
	if err := cli.ValidateOutputFormat(flags.OutputFormat); err != nil {
		return err
	}

	executor, err := cli.NewToolExecutor(flags.ToExecutorOptions())
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.Execute(ctx, toolName, args)
}

func init() {
	rootCmd.AddCommand(statusCmd)
	cli.RegisterCommonFlags(statusCmd, &statusFlags)
}
