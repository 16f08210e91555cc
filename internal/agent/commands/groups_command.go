package commands

import (
	"context"
	"strings"
)

// GroupsCommand manages the enabled-groups selection.
type GroupsCommand struct {
	*BaseCommand
}

// NewGroupsCommand creates a new groups command
func NewGroupsCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *GroupsCommand {
	return &GroupsCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute dispatches to the set or clear subcommand. "groups set" with no
// names selects no groups at all, "groups clear" removes the selection so
// every eligible group counts again.
func (g *GroupsCommand) Execute(ctx context.Context, args []string) error {
	if _, err := g.parseArgs(args, 1, g.Usage()); err != nil {
		return err
	}

	switch strings.ToLower(args[0]) {
	case "set":
		return g.setGroups(ctx, args[1:])
	case "clear":
		return g.clearGroups(ctx)
	default:
		return g.validateTarget(args[0], []string{"set", "clear"})
	}
}

func (g *GroupsCommand) setGroups(ctx context.Context, args []string) error {
	groups := make([]interface{}, 0, len(args))
	for _, arg := range args {
		for _, name := range strings.Split(stripQuotes(arg), ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				groups = append(groups, name)
			}
		}
	}

	result, err := g.callJSONObject(ctx, "groups_set", map[string]interface{}{
		"groups": groups,
	})
	if err != nil {
		g.output.Error("Failed to set enabled groups: %v", err)
		return nil
	}

	selected := getStringSlice(result, "enabled_groups")
	if len(selected) == 0 {
		g.output.Success("Group selection set to none, only required groups apply")
		return nil
	}
	g.output.Success("Enabled groups: %s", strings.Join(selected, ", "))
	return nil
}

func (g *GroupsCommand) clearGroups(ctx context.Context) error {
	if _, err := g.callJSONObject(ctx, "groups_set", nil); err != nil {
		g.output.Error("Failed to clear group selection: %v", err)
		return nil
	}

	g.output.Success("Group selection cleared, all eligible groups apply")
	return nil
}

// Usage returns the usage string
func (g *GroupsCommand) Usage() string {
	return "groups set [name ...] | groups clear"
}

// Description returns the command description
func (g *GroupsCommand) Description() string {
	return "Set or clear the enabled feature groups"
}

// Completions returns possible completions
func (g *GroupsCommand) Completions(input string) []string {
	return []string{"set", "clear"}
}

// Aliases returns command aliases
func (g *GroupsCommand) Aliases() []string {
	return nil
}
