package commands

import (
	"context"
	"strings"
)

// RuleCommand sets or clears per-feature enablement rules.
type RuleCommand struct {
	*BaseCommand
}

// NewRuleCommand creates a new rule command
func NewRuleCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *RuleCommand {
	return &RuleCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute dispatches to the set or clear subcommand.
func (r *RuleCommand) Execute(ctx context.Context, args []string) error {
	if _, err := r.parseArgs(args, 1, r.Usage()); err != nil {
		return err
	}

	switch strings.ToLower(args[0]) {
	case "set":
		return r.setRule(ctx, args[1:])
	case "clear":
		return r.clearRule(ctx, args[1:])
	default:
		return r.validateTarget(args[0], []string{"set", "clear"})
	}
}

func (r *RuleCommand) setRule(ctx context.Context, args []string) error {
	if _, err := r.parseArgs(args, 2, "rule set <feature-id> <always|never|default>"); err != nil {
		return err
	}

	featureID := stripQuotes(args[0])
	rule := strings.ToLower(stripQuotes(args[1]))
	result, err := r.callJSONObject(ctx, "rule_set", map[string]interface{}{
		"feature": featureID,
		"rule":    rule,
	})
	if err != nil {
		r.output.Error("Failed to set rule: %v", err)
		return nil
	}

	r.output.Success("Rule for %s set to %s", getString(result, "feature"), getString(result, "rule"))
	return nil
}

func (r *RuleCommand) clearRule(ctx context.Context, args []string) error {
	if _, err := r.parseArgs(args, 1, "rule clear <feature-id>"); err != nil {
		return err
	}

	featureID := stripQuotes(args[0])
	if _, err := r.callJSONObject(ctx, "rule_clear", map[string]interface{}{
		"feature": featureID,
	}); err != nil {
		r.output.Error("Failed to clear rule: %v", err)
		return nil
	}

	r.output.Success("Rule for %s cleared, default applies", featureID)
	return nil
}

// Usage returns the usage string
func (r *RuleCommand) Usage() string {
	return "rule set <feature-id> <always|never|default> | rule clear <feature-id>"
}

// Description returns the command description
func (r *RuleCommand) Description() string {
	return "Set or clear the enablement rule for a feature"
}

// Completions returns possible completions
func (r *RuleCommand) Completions(input string) []string {
	return []string{"set", "clear"}
}

// Aliases returns command aliases
func (r *RuleCommand) Aliases() []string {
	return nil
}
