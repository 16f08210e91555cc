package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"featgate/internal/agent"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/mcp"
	sigyaml "sigs.k8s.io/yaml"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table.
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide formats output as a table with additional columns.
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON formats output as raw JSON data.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML converted from JSON.
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatWide,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported
// output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, wide, json, yaml)", format)
	}
}

// EndpointEnvVar is the environment variable overriding the control
// endpoint URL.
const EndpointEnvVar = "FEATGATE_ENDPOINT"

// GetDefaultEndpoint returns the endpoint from the environment, if set.
func GetDefaultEndpoint() string {
	return os.Getenv(EndpointEnvVar)
}

// ExecutorOptions contains configuration options for tool execution.
type ExecutorOptions struct {
	// Format specifies the desired output format (table, wide, json, yaml).
	Format OutputFormat
	// NoHeaders suppresses the header row in table output.
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output.
	Quiet bool
	// Debug enables verbose logging of MCP protocol messages.
	Debug bool
	// ConfigPath specifies the configuration directory used for endpoint
	// resolution when no explicit endpoint is given.
	ConfigPath string
	// Endpoint overrides the control endpoint URL.
	Endpoint string
}

// ToolExecutor executes control tools against a running featgate process and
// formats the results. It is the bridge between the cobra commands and the
// agent MCP client.
type ToolExecutor struct {
	client    *agent.Client
	options   ExecutorOptions
	formatter *TableFormatter
	endpoint  string
}

// NewToolExecutor creates a tool executor with the specified options. The
// endpoint is resolved from the --endpoint override, the FEATGATE_ENDPOINT
// environment variable (already folded into options by the flag layer), or
// the configuration directory, in that order. For local endpoints a quick
// reachability probe runs up front so users get a "start the server" hint
// instead of an MCP handshake failure.
func NewToolExecutor(options ExecutorOptions) (*ToolExecutor, error) {
	// The MCP protocol traffic is noise for CLI usage; only surface it in
	// debug mode.
	var logger *agent.Logger
	if options.Debug {
		logger = agent.NewLogger(true, true, false)
	} else {
		logger = agent.NewDevNullLogger()
	}

	endpoint := options.Endpoint
	if endpoint == "" {
		if options.ConfigPath == "" {
			return nil, fmt.Errorf("tool executor requires an endpoint or a config path")
		}
		endpoint = DetectControlEndpoint(options.ConfigPath)
	}

	transport := agent.TransportStreamableHTTP
	if strings.HasSuffix(endpoint, "/sse") {
		transport = agent.TransportSSE
	}

	if !IsRemoteEndpoint(endpoint) {
		if err := CheckServerRunning(endpoint); err != nil {
			return nil, err
		}
	}

	client := agent.NewClient(endpoint, logger, transport)

	// Drain notifications so the channel never blocks the client.
	go func() {
		for notification := range client.NotificationChan {
			if options.Debug {
				logger.Debug("MCP Notification: %s", notification.Method)
			}
		}
	}()

	return &ToolExecutor{
		client:    client,
		options:   options,
		formatter: NewTableFormatter(options),
		endpoint:  endpoint,
	}, nil
}

// GetClient returns the underlying agent client for advanced use cases.
func (e *ToolExecutor) GetClient() *agent.Client {
	return e.client
}

// Endpoint returns the resolved control endpoint URL.
func (e *ToolExecutor) Endpoint() string {
	return e.endpoint
}

// Connect establishes a connection to the control endpoint. A progress
// spinner is shown unless quiet mode is enabled.
func (e *ToolExecutor) Connect(ctx context.Context) error {
	if e.options.Quiet {
		return e.connect(ctx)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Connecting to featgate server..."
	s.Start()
	defer s.Stop()

	if err := e.connect(ctx); err != nil {
		s.FinalMSG = text.FgRed.Sprint("Failed to connect to featgate server") + "\n"
		return err
	}
	return nil
}

func (e *ToolExecutor) connect(ctx context.Context) error {
	if err := e.client.Connect(ctx); err != nil {
		return ClassifyConnectionError(err, e.endpoint)
	}
	return nil
}

// Close gracefully closes the connection to the control endpoint.
func (e *ToolExecutor) Close() error {
	return e.client.Close()
}

// Execute runs a control tool and formats the output according to the
// configured format.
func (e *ToolExecutor) Execute(ctx context.Context, toolName string, args map[string]interface{}) error {
	var s *spinner.Spinner
	if !e.options.Quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Executing command..."
		s.Start()
	}

	result, err := e.client.CallTool(ctx, toolName, args)

	if s != nil {
		s.Stop()
	}

	if err != nil {
		if s != nil {
			fmt.Fprintf(os.Stderr, "%s\n", text.FgRed.Sprint("❌ Command failed"))
		}
		return fmt.Errorf("failed to execute tool %s: %w", toolName, err)
	}

	if result.IsError {
		if s != nil {
			fmt.Fprintf(os.Stderr, "%s\n", text.FgRed.Sprint("❌ Command returned error"))
		}
		return e.formatError(result)
	}

	return e.formatOutput(result)
}

// ExecuteJSON runs a control tool and returns the result as parsed JSON for
// commands that post-process the data instead of printing it.
func (e *ToolExecutor) ExecuteJSON(ctx context.Context, toolName string, args map[string]interface{}) (interface{}, error) {
	return e.client.CallToolJSON(ctx, toolName, args)
}

// ListTools returns the tools published by the control endpoint.
func (e *ToolExecutor) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return e.client.ListToolsFromServer(ctx)
}

// GetOptions returns the executor options.
func (e *ToolExecutor) GetOptions() ExecutorOptions {
	return e.options
}

// formatError extracts the error text from an MCP result. The error is
// returned rather than printed so cobra controls the exit path.
func (e *ToolExecutor) formatError(result *mcp.CallToolResult) error {
	var errorMsgs []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			errorMsgs = append(errorMsgs, textContent.Text)
		}
	}
	return fmt.Errorf("%s", strings.Join(errorMsgs, "\n"))
}

// formatOutput renders the tool result in the configured output format.
func (e *ToolExecutor) formatOutput(result *mcp.CallToolResult) error {
	if len(result.Content) == 0 {
		if !e.options.Quiet {
			fmt.Println("No results")
		}
		return nil
	}

	textContent, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		return fmt.Errorf("content is not text")
	}

	switch e.options.Format {
	case OutputFormatJSON:
		fmt.Println(textContent.Text)
		return nil
	case OutputFormatYAML:
		return e.outputYAML(textContent.Text)
	case OutputFormatTable, OutputFormatWide:
		return e.outputTable(textContent.Text)
	default:
		return fmt.Errorf("unsupported output format: %s", e.options.Format)
	}
}

// outputYAML converts the JSON payload to YAML and prints it.
func (e *ToolExecutor) outputYAML(jsonData string) error {
	yamlData, err := sigyaml.JSONToYAML([]byte(jsonData))
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	fmt.Print(string(yamlData))
	return nil
}

// outputTable renders the JSON payload as a table. Non-JSON payloads are
// printed verbatim.
func (e *ToolExecutor) outputTable(jsonData string) error {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		fmt.Println(jsonData)
		return nil
	}
	return e.formatter.FormatData(data)
}
