package commands

import (
	"context"
)

// ResolveCommand shows the enablement decision for every catalog feature.
type ResolveCommand struct {
	*BaseCommand
}

// NewResolveCommand creates a new resolve command
func NewResolveCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *ResolveCommand {
	return &ResolveCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute resolves enablement and prints one decision per feature. With a
// feature ID argument only that feature's decision is shown.
func (r *ResolveCommand) Execute(ctx context.Context, args []string) error {
	obj, err := r.callJSONObject(ctx, "feature_resolve", nil)
	if err != nil {
		r.output.Error("Failed to resolve enablement: %v", err)
		return nil
	}

	decisions := getObjectSlice(obj, "decisions")
	if len(args) > 0 {
		featureID := stripQuotes(args[0])
		for _, decision := range decisions {
			if getString(decision, "id") == featureID {
				r.printDecision(decision)
				return nil
			}
		}
		r.output.Error("No decision for feature %s", featureID)
		return nil
	}

	enabled := getStringSlice(obj, "enabled")
	r.output.OutputLine("Enabled features: %d of %d", len(enabled), len(decisions))
	for _, decision := range decisions {
		r.printDecision(decision)
	}
	return nil
}

func (r *ResolveCommand) printDecision(decision map[string]interface{}) {
	state := "disabled"
	if getBool(decision, "enabled") {
		state = "enabled"
	}
	r.output.OutputLine("  %-28s %-9s rule=%-8s %s",
		getString(decision, "id"), state, getString(decision, "rule"), getString(decision, "reason"))
}

// Usage returns the usage string
func (r *ResolveCommand) Usage() string {
	return "resolve [feature-id]"
}

// Description returns the command description
func (r *ResolveCommand) Description() string {
	return "Resolve enablement decisions against the current settings"
}

// Completions returns possible completions
func (r *ResolveCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (r *ResolveCommand) Aliases() []string {
	return nil
}
