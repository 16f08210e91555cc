// Package lifecycle drives features through their runtime lifecycle against
// a host application. The Controller owns the record of active features and
// reconciles it with the configured enablement whenever the host reports a
// configuration change.
//
// # Controller lifecycle
//
// The controller itself moves through four states:
//
//	Unloaded ──Load──► Loaded ──Activate──► Activated ──Deactivate──► Deactivated
//
// Load registers the generated configuration schema and a one-shot callback
// that issues feature load requests once the host finishes loading the
// owning bundle. Activate subscribes to the enablement settings and runs the
// first reconciliation. Deactivate tears everything down; the controller
// cannot be reused afterwards. Calling an operation from the wrong state is
// a programming error and panics.
//
// # Reconciliation
//
// A reconciliation pass computes the desired feature set (resolve, then
// activation ordering), activates everything missing, then deactivates
// everything surplus. Activations always complete before the first
// deactivation so capability consumers never observe a gap. The pass is
// idempotent.
//
// # Failure isolation
//
// Host calls for a single feature are guarded: an error return or a panic is
// logged with the feature ID and published as a warning event, and the pass
// continues with the next feature. A misbehaving feature can never prevent
// the remaining features from being processed.
//
// # Threading
//
// Hosts deliver config-change callbacks and control-surface calls from
// arbitrary goroutines, so all controller operations serialize on an
// internal mutex. A reconciliation pass always runs to completion before the
// next operation starts.
package lifecycle
