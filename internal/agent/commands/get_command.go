package commands

import (
	"context"
	"strings"
)

// GetCommand shows the catalog entry for a single feature.
type GetCommand struct {
	*BaseCommand
}

// NewGetCommand creates a new get command
func NewGetCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *GetCommand {
	return &GetCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute fetches a feature by ID and prints its definition.
func (g *GetCommand) Execute(ctx context.Context, args []string) error {
	if _, err := g.parseArgs(args, 1, g.Usage()); err != nil {
		return err
	}

	featureID := stripQuotes(args[0])
	feature, err := g.callJSONObject(ctx, "feature_get", map[string]interface{}{
		"id": featureID,
	})
	if err != nil {
		g.output.Error("Failed to get feature %s: %v", featureID, err)
		return nil
	}

	g.output.OutputLine("Feature: %s", getString(feature, "id"))
	if name := getString(feature, "name"); name != "" {
		g.output.OutputLine("  Name:         %s", name)
	}
	if desc := getString(feature, "description"); desc != "" {
		g.output.OutputLine("  Description:  %s", desc)
	}
	g.output.OutputLine("  Default rule: %s", getString(feature, "default_rule"))
	if getBool(feature, "experimental") {
		g.output.OutputLine("  Experimental: yes")
	}
	if groups := getStringSlice(feature, "groups"); len(groups) > 0 {
		g.output.OutputLine("  Groups:       %s", strings.Join(groups, ", "))
	}
	if provides := getStringSlice(feature, "provides"); len(provides) > 0 {
		g.output.OutputLine("  Provides:     %s", strings.Join(provides, ", "))
	}
	if consumes := getStringSlice(feature, "consumes"); len(consumes) > 0 {
		g.output.OutputLine("  Consumes:     %s", strings.Join(consumes, ", "))
	}
	return nil
}

// Usage returns the usage string
func (g *GetCommand) Usage() string {
	return "get <feature-id>"
}

// Description returns the command description
func (g *GetCommand) Description() string {
	return "Show the catalog definition of a feature"
}

// Completions returns possible completions
func (g *GetCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (g *GetCommand) Aliases() []string {
	return []string{"show"}
}
