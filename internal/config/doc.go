// Package config loads and validates the featgate process configuration
// and provides file-backed storage for runtime documents.
//
// All configuration lives in a single directory, by default
// ~/.config/featgate, laid out as:
//
//	config.yaml     process configuration (control endpoint, development mode)
//	features/       feature manifests, one YAML file per feature
//	groups.yaml     feature group definitions
//	settings.yaml   runtime enablement settings (rules and enabled groups)
//	state/          runtime documents persisted by the host
//
// config.yaml is optional; a missing file yields the built-in defaults.
// A present but malformed file is an error, never silently ignored.
//
// The feature manifests and groups.yaml are read by the catalog package and
// settings.yaml by the settings package. This package owns config.yaml, the
// directory resolution, and the state/ storage.
package config
