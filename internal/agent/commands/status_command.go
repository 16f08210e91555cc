package commands

import (
	"context"
	"strings"
)

// StatusCommand shows the lifecycle controller state.
type StatusCommand struct {
	*BaseCommand
}

// NewStatusCommand creates a new status command
func NewStatusCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *StatusCommand {
	return &StatusCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute prints the controller state, the active set and the last
// reconcile time.
func (s *StatusCommand) Execute(ctx context.Context, args []string) error {
	status, err := s.callJSONObject(ctx, "controller_status", nil)
	if err != nil {
		s.output.Error("Failed to get controller status: %v", err)
		return nil
	}

	s.output.OutputLine("State:          %s", getString(status, "state"))
	if capability := getString(status, "priority_capability"); capability != "" {
		s.output.OutputLine("Priority:       %s", capability)
	}
	active := getStringSlice(status, "active_features")
	if len(active) > 0 {
		s.output.OutputLine("Active (%d):     %s", len(active), strings.Join(active, ", "))
	} else {
		s.output.OutputLine("Active:         none")
	}
	if last := getString(status, "last_reconcile"); last != "" {
		s.output.OutputLine("Last reconcile: %s", last)
	}
	return nil
}

// Usage returns the usage string
func (s *StatusCommand) Usage() string {
	return "status"
}

// Description returns the command description
func (s *StatusCommand) Description() string {
	return "Show lifecycle controller state and the active feature set"
}

// Completions returns possible completions
func (s *StatusCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (s *StatusCommand) Aliases() []string {
	return nil
}
