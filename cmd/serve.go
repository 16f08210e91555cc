package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"featgate/internal/app"
	"featgate/pkg/logging"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveSilent suppresses informational logging; useful when another process
// captures stdout.
var serveSilent bool

// serveConfigPath specifies a custom configuration directory path. The
// directory holds config.yaml, features/, groups.yaml, settings.yaml, and
// the state/ documents.
var serveConfigPath string

// serveCmd defines the serve command. It runs the standalone featgate host:
// the feature catalog is loaded, the lifecycle controller activates the
// configured features, settings.yaml is watched for changes, and the MCP
// control endpoint accepts clients.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the featgate host with its control endpoint",
	Long: `Starts the standalone featgate host.

The host loads the feature catalog from the configuration directory,
activates every enabled feature in capability-provider order, and keeps the
active set reconciled against settings.yaml. Edits to settings.yaml are
picked up live without a restart.

A control endpoint (MCP over streamable-http or SSE) is served for the
other featgate commands and for AI assistants:

  featgate list features     inspect the catalog
  featgate resolve           explain the enablement outcome
  featgate rule set ...      change a feature's rule
  featgate agent --repl      interactive shell

The process runs until interrupted (Ctrl+C or SIGTERM); on shutdown the
active features' state is persisted before deactivation.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logLevel := logging.LevelInfo
	if serveDebug {
		logLevel = logging.LevelDebug
	}
	if serveSilent {
		logLevel = logging.LevelWarn
	}
	logging.Init(logLevel, os.Stderr)

	application, err := app.NewApplication(app.NewConfig(serveDebug, serveSilent, serveConfigPath, GetVersion()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&serveSilent, "silent", false, "Suppress informational logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Configuration directory (default: ~/.config/featgate)")
}
