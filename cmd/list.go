package cmd

import (
	"fmt"

	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var listFlags cli.CommandFlags

// listResourceTypes are the resource types the list command accepts.
var listResourceTypes = []string{
	"features",
	"groups",
	"events",
}

// listResourceMappings maps resource types to the control tools that
// produce them.
var listResourceMappings = map[string]string{
	"features": "feature_list",
	"groups":   "group_list",
	"events":   "feature_events",
}

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list <resource-type>",
	Short: "List catalog features, groups, or lifecycle events",
	Long: `List resources known to a running featgate server.

Available resource types:
  features - All catalog features with their default rules and group memberships
  groups   - All feature groups with their resolved members
  events   - Recorded lifecycle events, newest first

Examples:
  featgate list features
  featgate list groups -o yaml
  featgate list events

Note: The server must be running (use 'featgate serve') before using these commands.`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return listResourceTypes, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	DisableFlagsInUseLine: true,
	RunE:                  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	resourceType := args[0]

	toolName, exists := listResourceMappings[resourceType]
	if !exists {
		return fmt.Errorf("unknown resource type %q. Available types: features, groups, events", resourceType)
	}

	if err := cli.ValidateOutputFormat(listFlags.OutputFormat); err != nil {
		return err
	}

	executor, err := cli.NewToolExecutor(listFlags.ToExecutorOptions())
	if err != nil {
		return err
	}
	defer executor.Close()

	ctx := cmd.Context()
	if err := executor.Connect(ctx); err != nil {
		return err
	}

	return executor.Execute(ctx, toolName, nil)
}

func init() {
	rootCmd.AddCommand(listCmd)
	cli.RegisterCommonFlags(listCmd, &listFlags)
}
