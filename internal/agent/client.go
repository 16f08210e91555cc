package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TransportType defines the transport type for MCP connections
type TransportType string

const (
	TransportSSE            TransportType = "sse"
	TransportStreamableHTTP TransportType = "streamable-http"
)

// Client talks to a featgate control endpoint. It keeps the published
// tool list cached and follows list_changed notifications.
type Client struct {
	endpoint         string
	transport        TransportType
	logger           *Logger
	client           client.MCPClient
	toolCache        []mcp.Tool
	mu               sync.RWMutex
	timeout          time.Duration
	cacheEnabled     bool
	formatters       *Formatters
	NotificationChan chan mcp.JSONRPCNotification
}

// NewClient creates a new control client with the specified transport.
func NewClient(endpoint string, logger *Logger, transport TransportType) *Client {
	return &Client{
		endpoint:         endpoint,
		transport:        transport,
		logger:           logger,
		toolCache:        []mcp.Tool{},
		timeout:          30 * time.Second,
		cacheEnabled:     true,
		formatters:       NewFormatters(),
		NotificationChan: make(chan mcp.JSONRPCNotification, 10),
	}
}

// Run connects, lists the control tools, and then keeps printing
// notifications until the context is cancelled. Streamable-http does not
// deliver notifications, so in that mode Run returns after the listing.
func (c *Client) Run(ctx context.Context) error {
	c.logger.Info("Connecting to featgate control endpoint at %s using %s transport...", c.endpoint, c.transport)

	mcpClient, err := c.createAndConnectClient(ctx)
	if err != nil {
		return err
	}
	defer mcpClient.Close()

	c.client = mcpClient

	if err := c.InitializeAndLoadData(ctx); err != nil {
		return err
	}

	if c.transport == TransportStreamableHTTP {
		c.logger.Info("Successfully connected and listed the control tools. Streamable-HTTP transport doesn't support notifications.")
		return nil
	}

	c.logger.Info("Waiting for notifications (press Ctrl+C to exit)...")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Shutting down...")
			return nil

		case notification := <-c.NotificationChan:
			if err := c.handleNotification(ctx, notification); err != nil {
				c.logger.Error("Failed to handle notification: %v", err)
			}
		}
	}
}

// handleNotification processes incoming notifications.
func (c *Client) handleNotification(ctx context.Context, notification mcp.JSONRPCNotification) error {
	if c.logger != nil {
		c.logger.Notification(notification.Method, notification.Params)
	}

	if c.cacheEnabled && notification.Method == "notifications/tools/list_changed" {
		return c.listTools(ctx, false)
	}
	return nil
}

// createAndConnectClient creates and connects an MCP client based on transport type.
func (c *Client) createAndConnectClient(ctx context.Context) (client.MCPClient, error) {
	if c.transport != TransportSSE && c.transport != TransportStreamableHTTP {
		return nil, fmt.Errorf("unsupported transport type: %s", c.transport)
	}

	var mcpClient client.MCPClient
	switch c.transport {
	case TransportSSE:
		sseClient, err := client.NewSSEMCPClient(c.endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create SSE client: %w", err)
		}

		if err := sseClient.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start SSE client: %w", err)
		}

		sseClient.OnNotification(func(notification mcp.JSONRPCNotification) {
			select {
			case c.NotificationChan <- notification:
			case <-ctx.Done():
			}
		})

		mcpClient = sseClient

	case TransportStreamableHTTP:
		httpClient, err := client.NewStreamableHttpClient(c.endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create streamable-http client: %w", err)
		}

		if err := httpClient.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start streamable-http client: %w", err)
		}

		httpClient.OnNotification(func(notification mcp.JSONRPCNotification) {
			select {
			case c.NotificationChan <- notification:
			case <-ctx.Done():
			}
		})

		mcpClient = httpClient
	}

	return mcpClient, nil
}

// Connect establishes a connection without the agent monitoring loop.
// This is the path the CLI uses.
func (c *Client) Connect(ctx context.Context) error {
	mcpClient, err := c.createAndConnectClient(ctx)
	if err != nil {
		return err
	}

	c.client = mcpClient

	if err := c.initialize(ctx); err != nil {
		c.client.Close()
		return fmt.Errorf("initialization failed: %w", err)
	}

	return nil
}

// InitializeAndLoadData performs the handshake and the initial tool listing.
func (c *Client) InitializeAndLoadData(ctx context.Context) error {
	if err := c.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := c.listTools(ctx, true); err != nil {
		return fmt.Errorf("initial tool listing failed: %w", err)
	}

	return nil
}

// initialize performs the MCP protocol handshake.
func (c *Client) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name: func() string {
					if c.logger != nil {
						return "featgate-agent"
					}
					return "featgate-cli"
				}(),
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}

	if c.logger != nil {
		c.logger.Request("initialize", req.Params)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Initialize(timeoutCtx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Initialize failed: %v", err)
		}
		return err
	}

	if c.logger != nil {
		c.logger.Response("initialize", result)
	}

	return nil
}

// listTools fetches the tool list and updates the cache. When the call is
// a refresh rather than the initial listing, the differences are shown.
func (c *Client) listTools(ctx context.Context, initial bool) error {
	req := mcp.ListToolsRequest{}

	if c.logger != nil {
		c.logger.Request("tools/list", req.Params)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.ListTools(timeoutCtx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("ListTools failed: %v", err)
		}
		return err
	}

	if c.logger != nil {
		c.logger.Response("tools/list", result)
	}

	if c.cacheEnabled {
		c.mu.RLock()
		oldTools := c.toolCache
		c.mu.RUnlock()

		c.mu.Lock()
		c.toolCache = result.Tools
		c.mu.Unlock()

		if !initial && c.logger != nil {
			c.showToolDiff(oldTools, result.Tools)
		}
	}

	return nil
}

// showToolDiff displays what changed between two tool listings.
func (c *Client) showToolDiff(oldTools, newTools []mcp.Tool) {
	oldNames := make(map[string]bool, len(oldTools))
	for _, tool := range oldTools {
		oldNames[tool.Name] = true
	}
	newNames := make(map[string]bool, len(newTools))
	for _, tool := range newTools {
		newNames[tool.Name] = true
	}

	var added, removed []string
	for name := range newNames {
		if !oldNames[name] {
			added = append(added, name)
		}
	}
	for name := range oldNames {
		if !newNames[name] {
			removed = append(removed, name)
		}
	}

	if len(added) == 0 && len(removed) == 0 {
		c.logger.Info("No tool changes detected")
		return
	}

	c.logger.Info("Tool changes detected:")
	for _, name := range added {
		c.logger.Success("  + Added: %s", name)
	}
	for _, name := range removed {
		c.logger.Error("  - Removed: %s", name)
	}
}

// CallTool executes a tool and returns the result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return nil, fmt.Errorf("tool call failed: %w", err)
	}

	return result, nil
}

// CallToolSimple executes a tool and returns the first text content.
func (c *Client) CallToolSimple(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	result, err := c.CallTool(ctx, name, args)
	if err != nil {
		return "", err
	}

	if result.IsError {
		var errorMsgs []string
		for _, content := range result.Content {
			if textContent, ok := mcp.AsTextContent(content); ok {
				errorMsgs = append(errorMsgs, textContent.Text)
			}
		}
		return "", fmt.Errorf("tool error: %s", fmt.Sprintf("%v", errorMsgs))
	}

	var output []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			output = append(output, textContent.Text)
		}
	}

	if len(output) == 0 {
		return "", nil
	}

	return output[0], nil
}

// CallToolJSON executes a tool and returns the result as parsed JSON.
// Non-JSON text results are returned as-is.
func (c *Client) CallToolJSON(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	textResult, err := c.CallToolSimple(ctx, name, args)
	if err != nil {
		return nil, err
	}

	var jsonResult interface{}
	if err := json.Unmarshal([]byte(textResult), &jsonResult); err != nil {
		return textResult, nil
	}

	return jsonResult, nil
}

// ListToolsFromServer refreshes the cache from the server and returns the tools.
func (c *Client) ListToolsFromServer(ctx context.Context) ([]mcp.Tool, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	if err := c.listTools(ctx, true); err != nil {
		return nil, err
	}

	return c.GetToolCache(), nil
}

// GetToolByName returns a cached tool by its exact name, nil when unknown.
func (c *Client) GetToolByName(name string) *mcp.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.toolCache {
		if c.toolCache[i].Name == name {
			return &c.toolCache[i]
		}
	}
	return nil
}

// GetToolCache returns the cached tool list.
func (c *Client) GetToolCache() []mcp.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.toolCache
}

// RefreshToolCache re-fetches the tool list from the server.
func (c *Client) RefreshToolCache(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("client not connected")
	}
	return c.listTools(ctx, true)
}

// GetFormatters returns the formatters for commands.
func (c *Client) GetFormatters() interface{} {
	return c.formatters
}

// GetEndpoint returns the endpoint this client talks to.
func (c *Client) GetEndpoint() string {
	return c.endpoint
}

// SupportsNotifications returns whether the transport delivers
// server-initiated notifications.
func (c *Client) SupportsNotifications() bool {
	return c.transport == TransportSSE
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	return nil
}

// PrettyJSON pretty-prints a value as indented JSON for logging.
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
