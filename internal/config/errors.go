package config

import (
	"fmt"
	"strings"
)

// ConfigurationError is a structured diagnostic for one problem found in
// the configuration directory. The check command collects these so a user
// sees every problem at once instead of fixing them one process start at
// a time.
type ConfigurationError struct {
	FilePath    string   `json:"filePath"`              // Full path to the offending file
	FileName    string   `json:"fileName"`              // Base name of the file
	Category    string   `json:"category"`              // config, features, groups, settings
	ErrorType   string   `json:"errorType"`             // parse, validation, io
	Message     string   `json:"message"`               // Human-readable error message
	Suggestions []string `json:"suggestions,omitempty"` // Actionable fixes
}

// Error implements the error interface.
func (ce ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ce.Category, ce.FileName, ce.Message)
}

// DetailedError returns a multi-line message with full context.
func (ce ConfigurationError) DetailedError() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Configuration error in %s", ce.FileName))
	parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	parts = append(parts, fmt.Sprintf("  Category: %s", ce.Category))
	parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))
	parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))

	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}

	return strings.Join(parts, "\n")
}

// ConfigurationErrorCollection holds every problem found during one
// configuration scan.
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError `json:"errors"`
}

// Error implements the error interface for the collection.
func (cec ConfigurationErrorCollection) Error() string {
	switch len(cec.Errors) {
	case 0:
		return "no configuration errors"
	case 1:
		return cec.Errors[0].Error()
	default:
		return fmt.Sprintf("%d configuration errors: %s (and %d more)",
			len(cec.Errors), cec.Errors[0].Error(), len(cec.Errors)-1)
	}
}

// Add appends a diagnostic to the collection.
func (cec *ConfigurationErrorCollection) Add(err ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

// HasErrors returns true if the collection contains any diagnostics.
func (cec *ConfigurationErrorCollection) HasErrors() bool {
	return len(cec.Errors) > 0
}

// Count returns the number of diagnostics in the collection.
func (cec *ConfigurationErrorCollection) Count() int {
	return len(cec.Errors)
}
