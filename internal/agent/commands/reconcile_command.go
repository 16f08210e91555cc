package commands

import (
	"context"
	"strings"
)

// ReconcileCommand triggers a lifecycle reconcile on the control endpoint.
type ReconcileCommand struct {
	*BaseCommand
}

// NewReconcileCommand creates a new reconcile command
func NewReconcileCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *ReconcileCommand {
	return &ReconcileCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute reconciles the active feature set against the current resolution
// and reports what changed.
func (r *ReconcileCommand) Execute(ctx context.Context, args []string) error {
	result, err := r.callJSONObject(ctx, "feature_reconcile", nil)
	if err != nil {
		r.output.Error("Reconcile failed: %v", err)
		return nil
	}

	activated := getStringSlice(result, "activated")
	deactivated := getStringSlice(result, "deactivated")
	failed := getStringSlice(result, "failed")
	active := getStringSlice(result, "active")

	if len(activated) == 0 && len(deactivated) == 0 && len(failed) == 0 {
		r.output.Success("Nothing to reconcile, %d features active", len(active))
		return nil
	}

	if len(activated) > 0 {
		r.output.Success("Activated:   %s", strings.Join(activated, ", "))
	}
	if len(deactivated) > 0 {
		r.output.OutputLine("Deactivated: %s", strings.Join(deactivated, ", "))
	}
	if len(failed) > 0 {
		r.output.Error("Failed:      %s", strings.Join(failed, ", "))
	}
	r.output.OutputLine("Active features: %d", len(active))
	return nil
}

// Usage returns the usage string
func (r *ReconcileCommand) Usage() string {
	return "reconcile"
}

// Description returns the command description
func (r *ReconcileCommand) Description() string {
	return "Reconcile the active feature set against the current resolution"
}

// Completions returns possible completions
func (r *ReconcileCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (r *ReconcileCommand) Aliases() []string {
	return nil
}
