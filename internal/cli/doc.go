// Package cli provides the shared plumbing for featgate's command-line
// commands: connecting to a running control endpoint, executing control
// tools, and formatting results.
//
// The central type is ToolExecutor, which wraps the agent MCP client with
// progress indication, error classification, and output formatting. Commands
// register their flags through CommandFlags and convert them into
// ExecutorOptions:
//
//	var flags cli.CommandFlags
//	cli.RegisterCommonFlags(cmd, &flags)
//	...
//	executor, err := cli.NewToolExecutor(flags.ToExecutorOptions())
//	if err != nil {
//	    return err
//	}
//	defer executor.Close()
//	return executor.Execute(ctx, "feature_list", nil)
//
// Output formats follow the kubectl conventions: a plain table by default,
// with json and yaml for scripting. Table output for featgate payloads
// (features, groups, decisions, events) gets shape-specific columns; unknown
// payloads fall back to a generic rendering.
package cli
