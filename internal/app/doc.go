// Package app assembles a featgate process: it loads the configuration and
// feature catalog, wires the standalone host, lifecycle controller, settings
// store and watcher, event bus, and control endpoint together, and runs the
// result until the context is cancelled.
//
// # Startup Sequence
//
//  1. Load config.yaml (defaults when absent)
//  2. Load the feature catalog (features/*.yaml) and group definitions
//     (groups.yaml) from the configuration directory
//  3. Load the enablement settings (settings.yaml) into the store
//  4. Build the standalone host, event bus, and lifecycle controller, and
//     register the API adapters for catalog, controller, settings, and events
//  5. Controller Load + Activate, then mark the host ready so the load pass
//     fires in activation order
//  6. Start the settings watcher and the MCP control endpoint
//
// # Shutdown Sequence
//
// On context cancellation the application serializes the active features,
// deactivates the controller, stops the settings watcher, and shuts the
// control endpoint down, in that order.
//
// # Usage
//
//	cfg := app.NewConfig(debug, silent, configPath, version)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
package app
