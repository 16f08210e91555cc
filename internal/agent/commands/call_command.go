package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// CallCommand invokes an arbitrary control tool with raw JSON arguments.
type CallCommand struct {
	*BaseCommand
}

// NewCallCommand creates a new call command
func NewCallCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *CallCommand {
	return &CallCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute calls the named tool. Everything after the tool name is parsed as
// a single JSON object of arguments.
func (c *CallCommand) Execute(ctx context.Context, args []string) error {
	if _, err := c.parseArgs(args, 1, c.Usage()); err != nil {
		return err
	}

	toolName := args[0]
	toolArgs := map[string]interface{}{}
	if len(args) > 1 {
		raw := c.joinArgsFrom(args, 1)
		if err := json.Unmarshal([]byte(raw), &toolArgs); err != nil {
			return fmt.Errorf("invalid JSON arguments: %w", err)
		}
	}

	c.output.Info("Calling tool %s...", toolName)
	result, err := c.client.CallTool(ctx, toolName, toolArgs)
	if err != nil {
		c.output.Error("Tool call failed: %v", err)
		return nil
	}

	c.printResult(result)
	return nil
}

// printResult renders every text content block, flagging error results.
func (c *CallCommand) printResult(result *mcp.CallToolResult) {
	if result.IsError {
		for _, content := range result.Content {
			if text, ok := mcp.AsTextContent(content); ok {
				c.output.Error("%s", text.Text)
			}
		}
		return
	}

	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			c.output.OutputLine("%s", text.Text)
		}
	}
}

// Usage returns the usage string
func (c *CallCommand) Usage() string {
	return `call <tool-name> [{"arg": "value"}]`
}

// Description returns the command description
func (c *CallCommand) Description() string {
	return "Call a control tool with JSON arguments"
}

// Completions returns tool names from the cache
func (c *CallCommand) Completions(input string) []string {
	return c.getToolCompletions()
}

// Aliases returns command aliases
func (c *CallCommand) Aliases() []string {
	return nil
}
