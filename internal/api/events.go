package api

import "time"

// EventInfo describes one recorded lifecycle event.
type EventInfo struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Reason is the machine-readable event reason, e.g. "FeatureActivated".
	Reason string `json:"reason"`

	// Type is "Normal" or "Warning".
	Type string `json:"type"`

	// FeatureID is the subject feature, empty for controller-level events.
	FeatureID string `json:"feature_id,omitempty"`

	Message string `json:"message"`
}

// EventFilter restricts which recorded events are returned.
// Zero values leave the corresponding dimension unfiltered.
type EventFilter struct {
	FeatureID string
	Reason    string
	Type      string
	Since     time.Time
	Limit     int
}

// EventSourceHandler provides read access to the recorded event history.
type EventSourceHandler interface {
	// Events returns recorded events matching the filter, newest first.
	Events(filter EventFilter) []EventInfo
}
