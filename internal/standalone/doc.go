// Package standalone provides the reference lifecycle.Host used by
// `featgate serve`.
//
// Features here are in-process records rather than dynamically loaded
// code: loading marks a feature known, activation marks it active, and
// serialization writes a per-feature state document through the
// configuration storage. The host bridges the controller's configuration
// lookups and change subscriptions onto the settings store, and its
// owner-loaded callback onto MarkReady, which the application calls once
// startup is complete.
//
// The host also implements lifecycle.ExperimentalLoader so experimental
// features take a separately tracked load path.
package standalone
