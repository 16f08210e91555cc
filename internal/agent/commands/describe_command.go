package commands

import (
	"context"
)

// DescribeCommand shows the schema of a control tool.
type DescribeCommand struct {
	*BaseCommand
}

// NewDescribeCommand creates a new describe command
func NewDescribeCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *DescribeCommand {
	return &DescribeCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute prints the description and input schema of the named tool.
func (d *DescribeCommand) Execute(ctx context.Context, args []string) error {
	if _, err := d.parseArgs(args, 1, d.Usage()); err != nil {
		return err
	}

	toolName := args[0]
	formatters := d.getFormatters()
	tool := formatters.FindTool(d.client.GetToolCache(), toolName)
	if tool == nil {
		if err := d.client.RefreshToolCache(ctx); err != nil {
			d.output.Error("Failed to refresh tool cache: %v", err)
			return nil
		}
		tool = formatters.FindTool(d.client.GetToolCache(), toolName)
	}
	if tool == nil {
		d.output.Error("Tool %s not found", toolName)
		return nil
	}

	d.output.OutputLine("%s", formatters.FormatToolDetail(*tool))
	return nil
}

// Usage returns the usage string
func (d *DescribeCommand) Usage() string {
	return "describe <tool-name>"
}

// Description returns the command description
func (d *DescribeCommand) Description() string {
	return "Show the description and input schema of a control tool"
}

// Completions returns tool names from the cache
func (d *DescribeCommand) Completions(input string) []string {
	return d.getToolCompletions()
}

// Aliases returns command aliases
func (d *DescribeCommand) Aliases() []string {
	return []string{"desc"}
}
