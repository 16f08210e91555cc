package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ClientInterface defines what commands need from the control client.
// Commands work against this abstraction so they can be tested with a
// fake client instead of a live connection.
type ClientInterface interface {
	// Cached tool list published by the control endpoint
	GetToolCache() []mcp.Tool
	RefreshToolCache(ctx context.Context) error

	// Tool execution
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error)
	CallToolJSON(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)

	// Formatters access for consistent output formatting.
	// Returns the concrete Formatters type that will be cast by commands.
	GetFormatters() interface{}
}

// FormatterInterface defines the formatting operations commands rely on.
type FormatterInterface interface {
	FormatToolsList(tools []mcp.Tool) string
	FormatToolDetail(tool mcp.Tool) string
	FindTool(tools []mcp.Tool, name string) *mcp.Tool
}

// TransportInterface lets commands adapt to transport capabilities,
// mainly whether real-time notifications can arrive.
type TransportInterface interface {
	SupportsNotifications() bool
}

// BaseCommand provides shared plumbing for all REPL commands: the client,
// the output logger, and small parsing and extraction helpers.
type BaseCommand struct {
	client    ClientInterface
	output    OutputLogger
	transport TransportInterface
}

// NewBaseCommand creates a new base command with the specified dependencies.
func NewBaseCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *BaseCommand {
	return &BaseCommand{
		client:    client,
		output:    output,
		transport: transport,
	}
}

// parseArgs validates the argument count against a minimum and returns a
// usage error when too few were given.
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// joinArgsFrom joins arguments starting at index into one string.
func (b *BaseCommand) joinArgsFrom(args []string, index int) string {
	if index >= len(args) {
		return ""
	}
	return strings.Join(args[index:], " ")
}

// validateTarget checks a subcommand word against the allowed set.
func (b *BaseCommand) validateTarget(target string, validTargets []string) error {
	for _, valid := range validTargets {
		if strings.EqualFold(target, valid) {
			return nil
		}
	}
	return fmt.Errorf("unknown target: %s. Valid targets: %s", target, strings.Join(validTargets, ", "))
}

// getToolCompletions returns tool name completions from the client cache.
func (b *BaseCommand) getToolCompletions() []string {
	tools := b.client.GetToolCache()
	var completions []string
	for _, tool := range tools {
		completions = append(completions, tool.Name)
	}
	return completions
}

// getFormatters returns the formatters cast to the command-facing interface.
func (b *BaseCommand) getFormatters() FormatterInterface {
	return b.client.GetFormatters().(FormatterInterface)
}

// callJSONObject executes a tool and asserts the result decodes to a JSON
// object. Tool-reported errors surface as errors from CallToolJSON already.
func (b *BaseCommand) callJSONObject(ctx context.Context, tool string, args map[string]interface{}) (map[string]interface{}, error) {
	result, err := b.client.CallToolJSON(ctx, tool, args)
	if err != nil {
		return nil, err
	}
	obj, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected %s response format", tool)
	}
	return obj, nil
}

// stripQuotes removes surrounding single or double quotes from a string.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseKeyValueArgs parses key=value arguments into a string map.
// Arguments without '=' are reported via the optional logger and skipped.
func parseKeyValueArgs(args []string, output OutputLogger) map[string]string {
	params := make(map[string]string)

	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			if output != nil {
				output.Debug("Ignoring argument without '=': %s", arg)
			}
			continue
		}

		parts := strings.SplitN(arg, "=", 2)
		if len(parts) == 2 {
			params[parts[0]] = stripQuotes(parts[1])
		}
	}

	return params
}

// getString extracts a string field from a decoded JSON object.
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getBool extracts a boolean field from a decoded JSON object.
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getStringSlice extracts a string array field from a decoded JSON object.
func getStringSlice(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// getObjectSlice extracts an array of JSON objects from a decoded object.
func getObjectSlice(m map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}
