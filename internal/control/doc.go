// Package control exposes the running featgate process over MCP.
//
// The server publishes a fixed set of tools covering the catalog
// (feature_list, feature_get, group_list), the lifecycle controller
// (controller_status, feature_resolve, feature_reconcile,
// feature_serialize), the enablement settings (settings_get, rule_set,
// rule_clear, groups_set), and the recorded event history
// (feature_events).
//
// Handlers reach the rest of the process exclusively through the central
// API layer, so the control surface stays decoupled from the concrete
// implementations behind it. Supported transports are streamable-http
// (default) and SSE; the stdio transport is reserved for the agent's
// proxy mode.
package control
