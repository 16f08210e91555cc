package api

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error with contextual information.
// This standardized error type provides consistent error handling across all API
// operations for cases where requested resources don't exist in the system.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "feature", "group", "rule")
	ResourceType string

	// ResourceName is the specific identifier of the resource that was not found
	ResourceName string

	// Message provides a custom error message if the default format is insufficient
	Message string
}

// Error implements the error interface for NotFoundError.
// Returns either the custom message if provided, or a formatted default message
// using the resource type and name.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// NewFeatureNotFoundError creates a NotFoundError for a missing feature.
func NewFeatureNotFoundError(id string) *NotFoundError {
	return &NotFoundError{ResourceType: "feature", ResourceName: id}
}

// NewGroupNotFoundError creates a NotFoundError for a missing feature group.
func NewGroupNotFoundError(name string) *NotFoundError {
	return &NotFoundError{ResourceType: "group", ResourceName: name}
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
// This function provides a type-safe way to check for not found conditions
// in error handling code, supporting wrapped errors.
//
// Example:
//
//	info, err := api.GetCatalog().GetFeature("auth")
//	if api.IsNotFound(err) {
//	    // Handle not found case
//	}
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// InvalidRuleError indicates that a rule value outside the recognized
// tri-state set was supplied to a settings mutation.
type InvalidRuleError struct {
	// Value is the rejected rule string
	Value string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid enablement rule %q (valid: always, never, default)", e.Value)
}

// IsInvalidRule checks if an error is an InvalidRuleError using error unwrapping.
func IsInvalidRule(err error) bool {
	var invalidErr *InvalidRuleError
	return errors.As(err, &invalidErr)
}
