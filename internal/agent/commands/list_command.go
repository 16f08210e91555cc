package commands

import (
	"context"
	"strings"
)

// ListCommand lists features, groups, or the raw control tools.
type ListCommand struct {
	*BaseCommand
}

// NewListCommand creates a new list command
func NewListCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *ListCommand {
	return &ListCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute lists features, groups, or tools. Features are the default.
func (l *ListCommand) Execute(ctx context.Context, args []string) error {
	target := "features"
	if len(args) > 0 {
		target = strings.ToLower(args[0])
	}

	switch target {
	case "features":
		return l.listFeatures(ctx)
	case "groups":
		return l.listGroups(ctx)
	case "tools":
		if err := l.client.RefreshToolCache(ctx); err != nil {
			l.output.Error("Failed to refresh tool cache: %v", err)
			// Continue with the cached tools if refresh fails
		}
		return l.listTools()
	default:
		return l.validateTarget(target, []string{"features", "groups", "tools"})
	}
}

// listFeatures prints the catalog with default rules and group memberships.
func (l *ListCommand) listFeatures(ctx context.Context) error {
	obj, err := l.callJSONObject(ctx, "feature_list", nil)
	if err != nil {
		l.output.Error("Failed to list features: %v", err)
		return nil
	}

	features := getObjectSlice(obj, "features")
	if len(features) == 0 {
		l.output.OutputLine("No features in the catalog")
		return nil
	}

	l.output.OutputLine("Features (%d):", len(features))
	for _, feature := range features {
		id := getString(feature, "id")
		rule := getString(feature, "default_rule")
		name := getString(feature, "name")
		if getBool(feature, "experimental") {
			name += " (experimental)"
		}
		groups := getStringSlice(feature, "groups")
		groupCol := "-"
		if len(groups) > 0 {
			groupCol = strings.Join(groups, ",")
		}
		l.output.OutputLine("  %-28s %-8s %-20s %s", id, rule, groupCol, name)
	}
	return nil
}

// listGroups prints the group index with resolved members.
func (l *ListCommand) listGroups(ctx context.Context) error {
	obj, err := l.callJSONObject(ctx, "group_list", nil)
	if err != nil {
		l.output.Error("Failed to list groups: %v", err)
		return nil
	}

	groups := getObjectSlice(obj, "groups")
	if len(groups) == 0 {
		l.output.OutputLine("No groups defined")
		return nil
	}

	l.output.OutputLine("Groups (%d):", len(groups))
	for _, group := range groups {
		name := getString(group, "name")
		if getBool(group, "required") {
			name += " (required)"
		}
		members := getStringSlice(group, "members")
		memberCol := "-"
		if len(members) > 0 {
			memberCol = strings.Join(members, ", ")
		}
		l.output.OutputLine("  %-24s %s", name, memberCol)
	}
	return nil
}

// listTools prints the tools published by the control endpoint.
func (l *ListCommand) listTools() error {
	tools := l.client.GetToolCache()
	l.output.OutputLine("%s", l.getFormatters().FormatToolsList(tools))
	return nil
}

// Usage returns the usage string
func (l *ListCommand) Usage() string {
	return "list [features|groups|tools]"
}

// Description returns the command description
func (l *ListCommand) Description() string {
	return "List catalog features, feature groups, or control tools"
}

// Completions returns possible completions
func (l *ListCommand) Completions(input string) []string {
	return []string{"features", "groups", "tools"}
}

// Aliases returns command aliases
func (l *ListCommand) Aliases() []string {
	return []string{"ls"}
}
