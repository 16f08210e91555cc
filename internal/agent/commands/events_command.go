package commands

import (
	"context"
	"strconv"
)

// EventsCommand queries the lifecycle event history.
type EventsCommand struct {
	*BaseCommand
}

// NewEventsCommand creates a new events command
func NewEventsCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *EventsCommand {
	return &EventsCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute lists recorded lifecycle events. Filters are given as key=value
// pairs: feature=<id>, reason=<reason>, type=<normal|warning>,
// since=<duration|timestamp>, limit=<n>.
func (e *EventsCommand) Execute(ctx context.Context, args []string) error {
	filters := parseKeyValueArgs(args, e.output)

	toolArgs := map[string]interface{}{}
	for key, value := range filters {
		switch key {
		case "feature", "reason", "type", "since":
			toolArgs[key] = value
		case "limit":
			limit, err := strconv.Atoi(value)
			if err != nil {
				e.output.Error("Invalid limit %q: %v", value, err)
				return nil
			}
			toolArgs["limit"] = limit
		default:
			e.output.Error("Unknown filter %q (valid: feature, reason, type, since, limit)", key)
			return nil
		}
	}

	result, err := e.callJSONObject(ctx, "feature_events", toolArgs)
	if err != nil {
		e.output.Error("Failed to query events: %v", err)
		return nil
	}

	events := getObjectSlice(result, "events")
	if len(events) == 0 {
		e.output.OutputLine("No events recorded")
		return nil
	}

	e.output.OutputLine("Events (%d):", len(events))
	for _, event := range events {
		e.output.OutputLine("  %s  %-8s %-20s %-24s %s",
			getString(event, "timestamp"),
			getString(event, "type"),
			getString(event, "reason"),
			getString(event, "feature_id"),
			getString(event, "message"))
	}
	return nil
}

// Usage returns the usage string
func (e *EventsCommand) Usage() string {
	return "events [feature=<id>] [reason=<reason>] [type=<type>] [since=<duration>] [limit=<n>]"
}

// Description returns the command description
func (e *EventsCommand) Description() string {
	return "List lifecycle events, optionally filtered"
}

// Completions returns possible completions
func (e *EventsCommand) Completions(input string) []string {
	return []string{"feature=", "reason=", "type=", "since=", "limit="}
}

// Aliases returns command aliases
func (e *EventsCommand) Aliases() []string {
	return nil
}
