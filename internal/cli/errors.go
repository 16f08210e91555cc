package cli

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorNetwork indicates a network connectivity error
	// (connection refused, host unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates a failure to reach a control endpoint. It wraps
// the underlying error and carries a category for user feedback and exit
// codes.
type ConnectionError struct {
	// Endpoint is the URL that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Type == ConnectionErrorNetwork && isLocalEndpoint(e.Endpoint) {
		return fmt.Sprintf("featgate server is not running at %s. Start it with: featgate serve", e.Endpoint)
	}
	return fmt.Sprintf("%s: failed to reach %s: %v", e.Type, e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError analyzes an error and returns a ConnectionError
// with the appropriate type. A nil error yields nil.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorDNS, Reason: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorTimeout, Reason: err}
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no route to host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "connection reset") {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorNetwork, Reason: err}
	}

	return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorUnknown, Reason: err}
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

func isLocalEndpoint(endpoint string) bool {
	return !IsRemoteEndpoint(endpoint)
}
