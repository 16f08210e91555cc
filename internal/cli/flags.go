package cli

import (
	"featgate/internal/config"

	"github.com/spf13/cobra"
)

// CommandFlags holds the common flag values used across CLI commands that
// connect to a running featgate control endpoint.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, wide, json, yaml).
	OutputFormat string
	// NoHeaders suppresses the header row in table output.
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output.
	Quiet bool
	// Debug enables verbose logging of MCP protocol messages.
	Debug bool
	// ConfigPath specifies a custom configuration directory path.
	ConfigPath string
	// Endpoint overrides the control endpoint URL.
	Endpoint string
}

// RegisterCommonFlags registers the flags shared by every command that talks
// to the control endpoint, keeping flag naming consistent across the CLI.
//
// The registered flags are:
//   - --output/-o: Output format (table, wide, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging (show MCP protocol messages)
//   - --config-path: Configuration directory
//   - --endpoint: Control endpoint URL (env: FEATGATE_ENDPOINT)
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml)")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging (show MCP protocol messages)")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	cmd.PersistentFlags().StringVar(&flags.Endpoint, "endpoint", GetDefaultEndpoint(), "Control endpoint URL (env: FEATGATE_ENDPOINT)")
}

// ToExecutorOptions converts CommandFlags to ExecutorOptions for use with
// NewToolExecutor.
func (f *CommandFlags) ToExecutorOptions() ExecutorOptions {
	return ExecutorOptions{
		Format:     OutputFormat(f.OutputFormat),
		NoHeaders:  f.NoHeaders,
		Quiet:      f.Quiet,
		Debug:      f.Debug,
		ConfigPath: f.ConfigPath,
		Endpoint:   f.Endpoint,
	}
}
