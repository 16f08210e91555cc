package api

import "time"

// ControllerState mirrors the lifecycle controller's state machine.
type ControllerState string

const (
	ControllerUnloaded    ControllerState = "unloaded"
	ControllerLoaded      ControllerState = "loaded"
	ControllerActivated   ControllerState = "activated"
	ControllerDeactivated ControllerState = "deactivated"
)

// ControllerStatus is a snapshot of the lifecycle controller.
type ControllerStatus struct {
	State ControllerState `json:"state"`

	// ActiveFeatures lists the IDs the controller currently tracks as
	// activated, in activation order.
	ActiveFeatures []string `json:"active_features"`

	// PriorityCapability is the capability whose providers are activated
	// before all other features.
	PriorityCapability string `json:"priority_capability"`

	// LastReconcile is the wall-clock time of the most recent
	// reconciliation pass, zero if none has run yet.
	LastReconcile time.Time `json:"last_reconcile,omitzero"`
}

// FeatureDecision explains the enablement outcome for one feature.
type FeatureDecision struct {
	ID string `json:"id"`

	// Rule is the effective rule applied ("always", "never", "default").
	Rule string `json:"rule"`

	// Enabled reports whether the feature is part of the resolved set.
	Enabled bool `json:"enabled"`

	// Reason names the clause that determined the outcome:
	// "required-group", "rule-always", "rule-never", "default-eligible",
	// "default-not-in-groups".
	Reason string `json:"reason"`
}

// ResolutionInfo is the full result of an enablement resolution, including
// the activation-ordered enabled set and a per-feature explanation.
type ResolutionInfo struct {
	// Enabled lists the resolved feature IDs in activation order.
	Enabled []string `json:"enabled"`

	// Decisions holds one entry per catalog feature, in catalog order.
	Decisions []FeatureDecision `json:"decisions"`
}

// ReconcileResult summarizes a single reconciliation pass.
type ReconcileResult struct {
	Activated   []string `json:"activated,omitempty"`
	Deactivated []string `json:"deactivated,omitempty"`

	// Failed lists features whose host transition reported an error.
	// Failures never abort the pass; the IDs are reported for visibility.
	Failed []string `json:"failed,omitempty"`

	// Active is the tracked active set after the pass, in activation order.
	Active []string `json:"active"`
}

// ControllerHandler exposes the lifecycle controller's runtime operations.
type ControllerHandler interface {
	// Status returns a snapshot of the controller state and active set.
	Status() ControllerStatus

	// Resolve computes the currently configured enablement outcome without
	// touching any feature state.
	Resolve() ResolutionInfo

	// Reconcile runs one reconciliation pass against the host and reports
	// what changed.
	Reconcile() (*ReconcileResult, error)

	// Serialize requests persistence for every tracked active feature
	// the host still reports as active.
	Serialize() error
}
