package config

// Config is the top-level configuration structure for featgate.
type Config struct {
	// Control configures the MCP control endpoint exposed by
	// `featgate serve`.
	Control ControlConfig `yaml:"control"`

	// PriorityCapability overrides the capability whose providers are
	// activated before all other features. Empty keeps the built-in
	// default.
	PriorityCapability string `yaml:"priorityCapability,omitempty"`

	// DevelopmentMode enables capability annotations in the generated
	// configuration schema and more verbose diagnostics.
	DevelopmentMode bool `yaml:"developmentMode,omitempty"`
}

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
)

// ControlConfig defines where the control endpoint binds and which MCP
// transport it speaks.
type ControlConfig struct {
	Port      int    `yaml:"port,omitempty"`      // default: 8090
	Host      string `yaml:"host,omitempty"`      // default: localhost
	Transport string `yaml:"transport,omitempty"` // default: streamable-http
}
