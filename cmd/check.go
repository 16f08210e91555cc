package cmd

import (
	"fmt"

	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var checkFlags cli.CommandFlags

// checkCmd reports whether a feature resolves as enabled, with an exit code
// suitable for scripting.
var checkCmd = &cobra.Command{
	Use:   "check <feature>",
	Short: "Check whether a feature resolves as enabled",
	Long: `Check whether a feature is part of the currently resolved enabled set.

The command prints the deciding clause and exits 0 when the feature is
enabled, 1 when it is disabled or unknown. Nothing is activated; this reads
the resolution only.

Examples:
  featgate check browser-integration
  featgate check sample-feature && echo enabled

Note: The server must be running (use 'featgate serve') before using this command.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	featureID := args[0]

	executor, err := cli.NewToolExecutor(checkFlags.ToExecutorOptions())
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	data, err := executor.ExecuteJSON(ctx, "feature_resolve", nil)
	if err != nil {
		return err
	}

	resolution, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected resolution payload")
	}
	decisions, _ := resolution["decisions"].([]interface{})
	for _, item := range decisions {
		decision, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if decision["id"] != featureID {
			continue
		}
		enabled, _ := decision["enabled"].(bool)
		reason, _ := decision["reason"].(string)
		if enabled {
			if !checkFlags.Quiet {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s is enabled (%s)", featureID, reason)))
			}
			return nil
		}
		return fmt.Errorf("%s is disabled (%s)", featureID, reason)
	}

	return fmt.Errorf("feature %q is not in the catalog", featureID)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	cli.RegisterCommonFlags(checkCmd, &checkFlags)
}
