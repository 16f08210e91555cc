package events

import (
	"time"
)

// EventType represents the type/severity of an event.
type EventType string

const (
	// EventTypeNormal indicates normal, non-problematic events.
	EventTypeNormal EventType = "Normal"

	// EventTypeWarning indicates events that may require attention.
	EventTypeWarning EventType = "Warning"
)

// EventReason represents the reason code for an event.
type EventReason string

// Feature lifecycle event reasons
const (
	// ReasonFeatureLoadRequested indicates a load request was issued for a
	// feature during the host-loaded pass.
	ReasonFeatureLoadRequested EventReason = "FeatureLoadRequested"

	// ReasonFeatureActivated indicates a feature was successfully activated.
	ReasonFeatureActivated EventReason = "FeatureActivated"

	// ReasonFeatureActivationFailed indicates the host reported a failure
	// while activating a feature.
	ReasonFeatureActivationFailed EventReason = "FeatureActivationFailed"

	// ReasonFeatureDeactivated indicates a feature was successfully deactivated.
	ReasonFeatureDeactivated EventReason = "FeatureDeactivated"

	// ReasonFeatureDeactivationFailed indicates the host reported a failure
	// while deactivating a feature.
	ReasonFeatureDeactivationFailed EventReason = "FeatureDeactivationFailed"

	// ReasonFeatureSerialized indicates feature state was persisted.
	ReasonFeatureSerialized EventReason = "FeatureSerialized"

	// ReasonFeatureSerializeFailed indicates feature state persistence failed.
	ReasonFeatureSerializeFailed EventReason = "FeatureSerializeFailed"
)

// Controller event reasons
const (
	// ReasonControllerLoaded indicates the controller finished its load phase.
	ReasonControllerLoaded EventReason = "ControllerLoaded"

	// ReasonControllerActivated indicates the controller entered the
	// activated state and performed its first reconciliation.
	ReasonControllerActivated EventReason = "ControllerActivated"

	// ReasonControllerDeactivated indicates the controller shut down.
	ReasonControllerDeactivated EventReason = "ControllerDeactivated"

	// ReasonReconcileCompleted indicates a reconciliation pass finished.
	ReasonReconcileCompleted EventReason = "ReconcileCompleted"
)

// Event is one recorded lifecycle occurrence.
type Event struct {
	// ID uniquely identifies the event instance. Assigned by the bus.
	ID string `json:"id"`

	// Timestamp is when the event was published. Assigned by the bus.
	Timestamp time.Time `json:"timestamp"`

	Reason EventReason `json:"reason"`
	Type   EventType   `json:"type"`

	// FeatureID is the subject feature, empty for controller-level events.
	FeatureID string `json:"feature_id,omitempty"`

	Message string `json:"message"`
}
