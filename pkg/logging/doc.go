// Package logging provides a structured logging system for featgate with
// unified log handling and level filtering.
//
// This package is a thin layer over Go's standard slog package. It keeps a
// single process-wide logger and exposes level functions that take a
// subsystem identifier as their first argument, so every log line can be
// filtered by the component that produced it.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage
//
//	import "featgate/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Catalog", "Loaded %d feature definitions", count)
//	logging.Warn("Settings", "Invalid rule %q ignored", value)
//	logging.Error("Lifecycle", err, "Activation of %s failed", featureID)
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Bootstrap**: Application initialization and startup
//   - **Catalog**: Feature and group definition loading
//   - **Settings**: Settings store and file watching
//   - **Lifecycle**: Feature activation and deactivation
//   - **Control**: The MCP control endpoint
//   - **Agent**: MCP client and REPL operations
//
// # Thread Safety
//
// Safe for concurrent logging from multiple goroutines; level filtering
// happens at the handler so filtered-out messages cost no allocation.
package logging
