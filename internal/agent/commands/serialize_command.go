package commands

import (
	"context"
	"strings"
)

// SerializeCommand asks the controller to persist its activation snapshot.
type SerializeCommand struct {
	*BaseCommand
}

// NewSerializeCommand creates a new serialize command
func NewSerializeCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *SerializeCommand {
	return &SerializeCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute triggers a snapshot write on the control endpoint.
func (s *SerializeCommand) Execute(ctx context.Context, args []string) error {
	result, err := s.callJSONObject(ctx, "feature_serialize", nil)
	if err != nil {
		s.output.Error("Serialize failed: %v", err)
		return nil
	}

	active := getStringSlice(result, "active")
	if len(active) > 0 {
		s.output.Success("Snapshot written (%d active: %s)", len(active), strings.Join(active, ", "))
	} else {
		s.output.Success("Snapshot written, no features active")
	}
	return nil
}

// Usage returns the usage string
func (s *SerializeCommand) Usage() string {
	return "serialize"
}

// Description returns the command description
func (s *SerializeCommand) Description() string {
	return "Persist the activation snapshot for the active features"
}

// Completions returns possible completions
func (s *SerializeCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (s *SerializeCommand) Aliases() []string {
	return []string{"snapshot"}
}
