package app

import (
	"featgate/internal/config"
)

// Config holds the process-level options that control how the application
// bootstraps, independent of the on-disk config.yaml.
type Config struct {
	// Debug enables verbose logging across the application.
	Debug bool

	// Silent suppresses informational logging, leaving warnings and errors.
	Silent bool

	// ConfigPath is the configuration directory holding config.yaml,
	// features/, groups.yaml, settings.yaml, and the state/ documents.
	// Empty selects the default directory (~/.config/featgate).
	ConfigPath string

	// Version is the build version injected by main, published through the
	// control endpoint.
	Version string

	// Featgate is the loaded on-disk configuration. Populated by
	// NewApplication; a pre-populated value is kept as-is (used by tests).
	Featgate *config.Config
}

// NewConfig creates a process configuration. An empty configPath selects the
// default configuration directory.
func NewConfig(debug, silent bool, configPath, version string) Config {
	if configPath == "" {
		configPath = config.GetDefaultConfigPathOrPanic()
	}
	return Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
		Version:    version,
	}
}
