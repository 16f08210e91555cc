package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with field context.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error.
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateOneOf checks if a value is in a list of allowed values.
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Validate checks the configuration for values the process cannot start
// with. It assumes defaults have already been applied.
func (c Config) Validate() error {
	var errs ValidationErrors

	if c.Control.Port < 1 || c.Control.Port > 65535 {
		errs.Add("control.port", fmt.Sprintf("must be between 1 and 65535, got %d", c.Control.Port), c.Control.Port)
	}
	if c.Control.Host == "" {
		errs.Add("control.host", "must not be empty")
	}

	allowed := []string{MCPTransportStreamableHTTP, MCPTransportSSE}
	if err := ValidateOneOf("control.transport", c.Control.Transport, allowed); err != nil {
		if ve, ok := err.(ValidationError); ok {
			errs = append(errs, ve)
		}
	}

	if strings.ContainsAny(c.PriorityCapability, " \t") {
		errs.Add("priorityCapability", "must not contain whitespace", c.PriorityCapability)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
