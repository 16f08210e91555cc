// Package settings owns the runtime enablement settings: the per-feature
// rule table and the enabled-groups selection.
//
// The Store is the in-memory source of truth. It loads settings.yaml from
// the configuration directory, persists mutations back to it, and notifies
// key-scoped subscribers when a value changes. The Watcher feeds external
// file edits back into the Store, so changing settings.yaml on disk has the
// same effect as a mutation through the API.
//
// Subscribers are notified serially from the goroutine that applied the
// change, after the store's lock has been released. The standalone host
// bridges these notifications into the controller's config-change
// subscriptions.
package settings
