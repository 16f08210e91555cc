package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"featgate/internal/agent"
	"featgate/internal/cli"
	"featgate/internal/config"

	"github.com/spf13/cobra"
)

var (
	agentEndpoint   string
	agentVerbose    bool
	agentNoColor    bool
	agentJSONRPC    bool
	agentREPL       bool
	agentTransport  string
	agentConfigPath string
)

// agentCmd represents the agent command.
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "MCP client for the featgate control endpoint",
	Long: `The agent command connects to the featgate control endpoint as an MCP
client, logs the JSON-RPC communication, and follows tool list changes.

It can run in two modes:
1. Normal mode (default): Connects, lists the control tools, and waits for
   notifications (SSE transport only)
2. REPL mode (--repl): Provides an interactive shell to inspect the catalog
   and steer the enablement

Transport options:
- streamable-http (default): HTTP-based transport, matches 'featgate serve'
- sse: Server-Sent Events transport with real-time notification support

In REPL mode, you can:
- List features, groups, and lifecycle events
- Resolve and explain the enablement outcome
- Set and clear rules, change the group selection
- Trigger reconciliation and state persistence
- Call any control tool with raw JSON arguments

By default, it connects to the control endpoint configured in your
featgate configuration file. You can override this with the --endpoint flag.

Note: The server must be running (use 'featgate serve') before using this command.`,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)

	agentCmd.Flags().StringVar(&agentEndpoint, "endpoint", "", "Control endpoint URL (default: from config)")
	agentCmd.Flags().BoolVar(&agentVerbose, "verbose", false, "Enable verbose logging (show keepalive messages)")
	agentCmd.Flags().BoolVar(&agentNoColor, "no-color", false, "Disable colored output")
	agentCmd.Flags().BoolVar(&agentJSONRPC, "json-rpc", false, "Enable full JSON-RPC message logging")
	agentCmd.Flags().BoolVar(&agentREPL, "repl", false, "Start interactive REPL mode")
	agentCmd.Flags().StringVar(&agentTransport, "transport", string(agent.TransportStreamableHTTP), "Transport to use (streamable-http, sse)")
	agentCmd.Flags().StringVar(&agentConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
}

func runAgent(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := agent.NewLogger(agentVerbose, !agentNoColor, agentJSONRPC)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	endpoint := agentEndpoint
	transport := agent.TransportType(agentTransport)
	if endpoint == "" {
		if env := cli.GetDefaultEndpoint(); env != "" {
			endpoint = env
		} else {
			endpoint = cli.DetectControlEndpoint(agentConfigPath)
		}
		if strings.HasSuffix(endpoint, "/sse") {
			transport = agent.TransportSSE
		}
	}

	switch transport {
	case agent.TransportSSE, agent.TransportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport: %s (valid: streamable-http, sse)", agentTransport)
	}

	client := agent.NewClient(endpoint, logger, transport)

	if agentREPL {
		repl := agent.NewREPL(client, logger)
		return repl.Run(ctx)
	}

	return client.Run(ctx)
}
