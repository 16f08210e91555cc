package cmd

import (
	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

var (
	eventsFlags   cli.CommandFlags
	eventsFeature string
	eventsReason  string
	eventsType    string
	eventsSince   string
	eventsLimit   int
)

// eventsCmd lists recorded lifecycle events with optional filters.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recorded lifecycle events",
	Long: `List the lifecycle events recorded by a running featgate server, newest
first: feature activations and deactivations, load requests, persistence,
reconciliation summaries, and their failures.

Examples:
  featgate events
  featgate events --feature browser-integration
  featgate events --type Warning --since 1h
  featgate events --reason FeatureActivationFailed -o json`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE:                  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	toolArgs := map[string]interface{}{}
	if eventsFeature != "" {
		toolArgs["feature"] = eventsFeature
	}
	if eventsReason != "" {
		toolArgs["reason"] = eventsReason
	}
	if eventsType != "" {
		toolArgs["type"] = eventsType
	}
	if eventsSince != "" {
		toolArgs["since"] = eventsSince
	}
	if eventsLimit > 0 {
		toolArgs["limit"] = eventsLimit
	}

	return executeControlTool(cmd, &eventsFlags, "feature_events", toolArgs)
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	cli.RegisterCommonFlags(eventsCmd, &eventsFlags)

	eventsCmd.Flags().StringVar(&eventsFeature, "feature", "", "Only events about this feature ID")
	eventsCmd.Flags().StringVar(&eventsReason, "reason", "", "Only events with this reason, e.g. FeatureActivated")
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "Only events of this type: Normal or Warning")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "", "Only events after this time (duration like 1h, or RFC3339)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "Maximum number of events to return")
}
