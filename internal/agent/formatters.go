package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Formatters provides utilities for formatting MCP data consistently.
type Formatters struct{}

// NewFormatters creates a new formatters instance.
func NewFormatters() *Formatters {
	return &Formatters{}
}

// FormatToolsList formats the tool list for console output.
func (f *Formatters) FormatToolsList(tools []mcp.Tool) string {
	if len(tools) == 0 {
		return "No tools available."
	}

	var output []string
	output = append(output, fmt.Sprintf("Available tools (%d):", len(tools)))
	for i, tool := range tools {
		output = append(output, fmt.Sprintf("  %d. %-22s - %s", i+1, tool.Name, tool.Description))
	}
	return strings.Join(output, "\n")
}

// FormatToolDetail formats detailed tool information.
func (f *Formatters) FormatToolDetail(tool mcp.Tool) string {
	var output []string
	output = append(output, fmt.Sprintf("Tool: %s", tool.Name))
	output = append(output, fmt.Sprintf("Description: %s", tool.Description))
	output = append(output, "Input Schema:")
	output = append(output, PrettyJSON(tool.InputSchema))
	return strings.Join(output, "\n")
}

// FormatToolsListJSON formats the tool list as JSON.
func (f *Formatters) FormatToolsListJSON(tools []mcp.Tool) (string, error) {
	if len(tools) == 0 {
		return "No tools available", nil
	}

	type ToolInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	toolList := make([]ToolInfo, len(tools))
	for i, tool := range tools {
		toolList[i] = ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
		}
	}

	jsonData, err := json.MarshalIndent(toolList, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format tools: %w", err)
	}
	return string(jsonData), nil
}

// FormatToolDetailJSON formats a single tool including its input schema as JSON.
func (f *Formatters) FormatToolDetailJSON(tool mcp.Tool) (string, error) {
	detail := map[string]interface{}{
		"name":        tool.Name,
		"description": tool.Description,
		"inputSchema": tool.InputSchema,
	}

	jsonData, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format tool detail: %w", err)
	}
	return string(jsonData), nil
}

// FindTool looks up a tool by name, nil when not present.
func (f *Formatters) FindTool(tools []mcp.Tool, name string) *mcp.Tool {
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i]
		}
	}
	return nil
}
