package config

const (
	// DefaultControlPort is the port the control endpoint binds by default.
	DefaultControlPort = 8090

	// DefaultControlHost is the interface the control endpoint binds by
	// default. Loopback only; exposing the endpoint is an explicit choice.
	DefaultControlHost = "localhost"
)

// GetDefaultConfig returns the built-in defaults used when config.yaml is
// absent or leaves keys unset.
func GetDefaultConfig() Config {
	return Config{
		Control: ControlConfig{
			Port:      DefaultControlPort,
			Host:      DefaultControlHost,
			Transport: MCPTransportStreamableHTTP,
		},
	}
}
