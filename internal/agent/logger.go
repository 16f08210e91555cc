package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Logger provides formatted logging for the agent. User-facing command
// output always goes to stdout; protocol and status messages go to the
// configured writer so stdio-proxy mode can divert them to stderr.
type Logger struct {
	verbose     bool
	useColor    bool
	jsonRPCMode bool
	writer      io.Writer
}

// NewLogger creates a new logger writing to stdout.
func NewLogger(verbose, useColor, jsonRPCMode bool) *Logger {
	return &Logger{
		verbose:     verbose,
		useColor:    useColor,
		jsonRPCMode: jsonRPCMode,
		writer:      os.Stdout,
	}
}

// NewLoggerWithWriter creates a new logger with a custom writer.
func NewLoggerWithWriter(verbose, useColor, jsonRPCMode bool, writer io.Writer) *Logger {
	return &Logger{
		verbose:     verbose,
		useColor:    useColor,
		jsonRPCMode: jsonRPCMode,
		writer:      writer,
	}
}

// NewDevNullLogger creates a logger that discards all protocol messages.
// The CLI uses this so tool output is the only thing the user sees.
func NewDevNullLogger() *Logger {
	return &Logger{writer: io.Discard}
}

// SetVerbose sets the verbose mode.
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// SetWriter sets a custom writer for protocol and status messages.
func (l *Logger) SetWriter(w io.Writer) {
	l.writer = w
}

// Output writes user-facing output directly to stdout without timestamps.
func (l *Logger) Output(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

// OutputLine writes user-facing output with a newline.
func (l *Logger) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) colorize(text, colorCode string) string {
	if !l.useColor {
		return text
	}
	return fmt.Sprintf("%s%s%s", colorCode, text, colorReset)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), msg)
}

// Debug logs a debug message (only in verbose mode).
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), l.colorize(msg, colorGray))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), l.colorize(msg, colorRed))
}

// Success logs a success message.
func (l *Logger) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), l.colorize(msg, colorGreen))
}

// Request logs an outgoing request.
func (l *Logger) Request(method string, params interface{}) {
	if !l.jsonRPCMode {
		switch method {
		case "initialize":
			l.Info("Initializing MCP session...")
		case "tools/list":
			l.Info("Listing control tools...")
		default:
			l.Info("Sending request: %s", method)
		}
		return
	}

	arrow := l.colorize("→", colorBlue)
	methodStr := l.colorize(fmt.Sprintf("REQUEST (%s)", method), colorBlue)

	fmt.Fprintf(l.writer, "[%s] %s %s:\n", l.timestamp(), arrow, methodStr)
	if params != nil {
		fmt.Fprintln(l.writer, l.colorize(PrettyJSON(params), colorBlue))
	}
	fmt.Fprintln(l.writer)
}

// Response logs an incoming response.
func (l *Logger) Response(method string, result interface{}) {
	if !l.jsonRPCMode {
		switch method {
		case "initialize":
			l.Success("Session initialized successfully")
		case "tools/list":
			if count := l.countTools(result); count >= 0 {
				l.Success("Found %d tools", count)
			} else {
				l.Success("Retrieved tool list")
			}
		default:
			l.Success("Received response for: %s", method)
		}
		return
	}

	arrow := l.colorize("←", colorGreen)
	methodStr := l.colorize(fmt.Sprintf("RESPONSE (%s)", method), colorGreen)

	fmt.Fprintf(l.writer, "[%s] %s %s:\n", l.timestamp(), arrow, methodStr)
	if result != nil {
		fmt.Fprintln(l.writer, l.colorize(PrettyJSON(result), colorGreen))
	}
	fmt.Fprintln(l.writer)
}

// Notification logs an incoming notification.
func (l *Logger) Notification(method string, params interface{}) {
	if method == "$/keepalive" && !l.verbose {
		return
	}

	if !l.jsonRPCMode {
		switch method {
		case "notifications/tools/list_changed":
			l.Info("Tool list changed! Fetching updated list...")
		default:
			if l.verbose {
				l.Debug("Received notification: %s", method)
			}
		}
		return
	}

	arrow := l.colorize("←", colorYellow)
	methodStr := l.colorize(fmt.Sprintf("NOTIFICATION (%s)", method), colorYellow)

	fmt.Fprintf(l.writer, "[%s] %s %s:\n", l.timestamp(), arrow, methodStr)
	if params != nil {
		fmt.Fprintln(l.writer, l.colorize(PrettyJSON(params), colorYellow))
	}
	fmt.Fprintln(l.writer)
}

// Write implements io.Writer for compatibility.
func (l *Logger) Write(p []byte) (n int, err error) {
	l.Debug("%s", string(p))
	return len(p), nil
}

// countTools attempts to count the tools in a tools/list response.
func (l *Logger) countTools(result interface{}) int {
	if v, ok := result.(map[string]interface{}); ok {
		if tools, ok := v["tools"].([]interface{}); ok {
			return len(tools)
		}
	}

	type toolsResult struct {
		Tools []interface{} `json:"tools"`
	}
	if jsonBytes, err := json.Marshal(result); err == nil {
		var tr toolsResult
		if err := json.Unmarshal(jsonBytes, &tr); err == nil && tr.Tools != nil {
			return len(tr.Tools)
		}
	}
	return -1
}
