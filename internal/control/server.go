package control

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"featgate/internal/config"
	"featgate/pkg/logging"
)

// ServerConfig defines where the control endpoint binds and which MCP
// transport it speaks.
type ServerConfig struct {
	Host      string
	Port      int
	Transport string
	Version   string
}

// Server is the MCP control endpoint of a featgate process.
type Server struct {
	config ServerConfig

	mu                   sync.RWMutex
	server               *server.MCPServer
	sseServer            *server.SSEServer
	streamableHTTPServer *server.StreamableHTTPServer
	cancelFunc           context.CancelFunc
}

// NewServer creates a control server. Start must be called before it
// accepts connections.
func NewServer(cfg ServerConfig) *Server {
	return &Server{config: cfg}
}

// Endpoint returns the URL clients use to reach this server.
func (s *Server) Endpoint() string {
	path := "/mcp"
	if s.config.Transport == config.MCPTransportSSE {
		path = "/sse"
	}
	return fmt.Sprintf("http://%s:%d%s", s.config.Host, s.config.Port, path)
}

// Start registers the tools and begins serving on the configured
// transport. The transport listeners run in background goroutines; Start
// returns immediately.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return fmt.Errorf("control server already started")
	}

	_, s.cancelFunc = context.WithCancel(ctx)

	mcpServer := server.NewMCPServer(
		"featgate",
		s.config.Version,
		server.WithToolCapabilities(false),
	)
	s.server = mcpServer
	s.mu.Unlock()

	s.registerTools()

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	switch s.config.Transport {
	case config.MCPTransportSSE:
		logging.Info("Control", "Starting control endpoint with SSE transport on %s", addr)
		baseURL := fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
		s.mu.Lock()
		s.sseServer = server.NewSSEServer(
			mcpServer,
			server.WithBaseURL(baseURL),
			server.WithSSEEndpoint("/sse"),
			server.WithMessageEndpoint("/message"),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := s.sseServer
		s.mu.Unlock()
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Control", err, "SSE server error")
			}
		}()

	case config.MCPTransportStreamableHTTP:
		fallthrough
	default:
		logging.Info("Control", "Starting control endpoint with streamable-http transport on %s", addr)
		s.mu.Lock()
		s.streamableHTTPServer = server.NewStreamableHTTPServer(mcpServer)
		streamableServer := s.streamableHTTPServer
		s.mu.Unlock()
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Control", err, "Streamable HTTP server error")
			}
		}()
	}

	return nil
}

// Stop shuts the transport listeners down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("control server not started")
	}

	logging.Info("Control", "Stopping control endpoint")
	cancelFunc := s.cancelFunc
	sseServer := s.sseServer
	streamableServer := s.streamableHTTPServer
	s.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Control", err, "Error shutting down SSE server")
		}
	}
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Control", err, "Error shutting down streamable HTTP server")
		}
	}

	s.mu.Lock()
	s.server = nil
	s.sseServer = nil
	s.streamableHTTPServer = nil
	s.mu.Unlock()

	return nil
}
