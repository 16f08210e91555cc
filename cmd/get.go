package cmd

import (
	"fmt"

	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var getFlags cli.CommandFlags

// getResourceTypes are the resource types the get command accepts.
var getResourceTypes = []string{
	"feature",
	"group",
}

// getCmd represents the get command.
var getCmd = &cobra.Command{
	Use:   "get <resource-type> <name>",
	Short: "Get a single catalog feature or group",
	Long: `Get detailed information about a single resource.

Available resource types:
  feature - A catalog feature by ID
  group   - A feature group by name

Examples:
  featgate get feature browser-integration
  featgate get group required -o json

Note: The server must be running (use 'featgate serve') before using these commands.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return getResourceTypes, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	DisableFlagsInUseLine: true,
	RunE:                  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	resourceType := args[0]
	name := args[1]

	var toolName string
	var toolArgs map[string]interface{}
	switch resourceType {
	case "feature":
		toolName = "feature_get"
		toolArgs = map[string]interface{}{"id": name}
	case "group":
		toolName = "group_get"
		toolArgs = map[string]interface{}{"name": name}
	default:
		return fmt.Errorf("unknown resource type %q. Available types: feature, group", resourceType)
	}

	if err := cli.ValidateOutputFormat(getFlags.OutputFormat); err != nil {
		return err
	}

	executor, err := cli.NewToolExecutor(getFlags.ToExecutorOptions())
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.Execute(ctx, toolName, toolArgs)
}

func init() {
	rootCmd.AddCommand(getCmd)
	cli.RegisterCommonFlags(getCmd, &getFlags)
}
