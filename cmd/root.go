package cmd

import (
	"os"

	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. These follow common conventions so scripts
// can distinguish "command failed" from "server not reachable".
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeServerUnavailable indicates the control endpoint could not be reached.
	ExitCodeServerUnavailable = 2
)

// rootCmd represents the base command for the featgate application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "featgate",
	Short: "Declarative feature enablement and lifecycle management",
	Long: `featgate decides, from declarative configuration, which optional features
a host application should have active, and safely reconciles the live
feature set whenever the configuration changes.

Run 'featgate serve' to start the standalone host with its control
endpoint, then use 'featgate list', 'featgate resolve', 'featgate rule'
and friends to inspect and steer the enablement.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "featgate version %s\n" .Version}}`)
	rootCmd.AddCommand(newSelfUpdateCmd())

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if cli.IsConnectionError(err) {
		return ExitCodeServerUnavailable
	}
	return ExitCodeError
}
