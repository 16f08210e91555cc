// Package agent provides the MCP client side of featgate: everything a
// terminal or an AI assistant needs to talk to a running featgate
// process through its control endpoint.
//
// The package supports three interaction modes:
//
//   - REPL mode: an interactive shell with tab completion, history, and
//     real-time notification display for exploring the catalog and
//     driving the lifecycle controller by hand.
//   - Monitor mode: connect, list the control tools, and keep printing
//     notifications until interrupted (SSE transport only).
//   - MCP server mode: a stdio proxy that re-exposes the control tools
//     so AI assistants can operate featgate through their own MCP
//     client.
//
// All modes share the same Client, which caches the tool list, follows
// tools/list_changed notifications, and wraps tool calls with timeouts.
//
// Quick start:
//
//	logger := agent.NewLogger(true, true, false)
//	client := agent.NewClient("http://localhost:8090/mcp", logger, agent.TransportStreamableHTTP)
//	repl := agent.NewREPL(client, logger)
//	repl.Run(ctx)
//
// For programmatic calls:
//
//	client := agent.NewClient(endpoint, nil, agent.TransportStreamableHTTP)
//	defer client.Close()
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	out, err := client.CallToolSimple(ctx, "controller_status", nil)
package agent
