package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"featgate/internal/config"
)

// DetectControlEndpoint resolves the control endpoint URL from the
// configuration directory. Missing configuration falls back to the built-in
// defaults rather than failing, so commands work against a default `featgate
// serve` without any config.yaml.
func DetectControlEndpoint(configPath string) string {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		cfg = config.GetDefaultConfig()
	}
	return ControlEndpoint(&cfg)
}

// ControlEndpoint builds the endpoint URL for the given configuration.
func ControlEndpoint(cfg *config.Config) string {
	host := cfg.Control.Host
	if host == "" {
		host = config.DefaultControlHost
	}
	port := cfg.Control.Port
	if port == 0 {
		port = config.DefaultControlPort
	}
	path := "/mcp"
	if cfg.Control.Transport == config.MCPTransportSSE {
		path = "/sse"
	}
	return fmt.Sprintf("http://%s:%d%s", host, port, path)
}

// IsRemoteEndpoint reports whether the endpoint points at something other
// than the local machine.
func IsRemoteEndpoint(endpoint string) bool {
	return !strings.Contains(endpoint, "localhost") && !strings.Contains(endpoint, "127.0.0.1")
}

// CheckServerRunning probes the control endpoint with a short HTTP request.
// It returns a ConnectionError with a start hint when nothing is listening.
func CheckServerRunning(endpoint string) error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(endpoint)
	if err != nil {
		return ClassifyConnectionError(err, endpoint)
	}
	defer resp.Body.Close()

	// The MCP transports answer GET with 200 or 202 depending on mode;
	// anything else means something different is bound to the port.
	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return &ConnectionError{
			Endpoint: endpoint,
			Type:     ConnectionErrorUnknown,
			Reason:   fmt.Errorf("unexpected status %d from control endpoint", resp.StatusCode),
		}
	}
	return nil
}

// FormatError formats an error message for CLI output.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output.
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output.
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}
