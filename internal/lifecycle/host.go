package lifecycle

import (
	"featgate/internal/api"
	"featgate/internal/catalog"
)

// Setting keys the controller reads and subscribes to on the host.
const (
	// SettingFeatureRules holds the per-feature rule table
	// (mapping of feature ID to always/never/default).
	SettingFeatureRules = api.SettingFeatureRules

	// SettingEnabledGroups holds the list of enabled group names. An unset
	// key means no selection, which makes every feature group-eligible.
	SettingEnabledGroups = api.SettingEnabledGroups
)

// Host is the collaborator boundary between the controller and the
// application embedding it. The controller decides which features should be
// active; the host performs the actual transitions and owns configuration,
// persistence, and callback delivery.
//
// Per-feature methods may be called repeatedly for the same feature across
// reconciliation passes; hosts should treat them as requests, not
// guaranteed single transitions.
type Host interface {
	// RequestLoad asks the host to load a feature's code and resources
	// without activating it.
	RequestLoad(featureID string) error

	// RequestActivate asks the host to activate a loaded feature.
	RequestActivate(featureID string) error

	// RequestDeactivate asks the host to deactivate a feature.
	// suppressPersist indicates that the feature's state must not be
	// persisted as part of the transition.
	RequestDeactivate(featureID string, suppressPersist bool) error

	// RequestSerialize asks the host to persist a feature's current state.
	RequestSerialize(featureID string) error

	// IsActive reports whether the host currently considers the feature
	// active. Used to filter serialization requests.
	IsActive(featureID string) bool

	// ConfigValue returns the current value for a setting key. The second
	// return is false when the key is unset.
	ConfigValue(key string) (interface{}, bool)

	// OnConfigChanged registers a callback invoked whenever the value of
	// the given setting key changes. The returned subscription releases
	// the registration.
	OnConfigChanged(key string, fn func()) (Subscription, error)

	// OnOwnerLoaded registers a one-shot callback invoked once the host has
	// finished loading the bundle that owns the features. If loading
	// already completed, the host invokes the callback immediately. The
	// registration removes itself after firing; releasing the returned
	// subscription afterwards is a no-op.
	OnOwnerLoaded(fn func()) (Subscription, error)

	// RegisterConfigSchema registers the generated feature configuration
	// schema with the host's configuration system.
	RegisterConfigSchema(schema ConfigSchema) error

	// ClearDeferredMainLoad clears the host's legacy deferred-load marker.
	// Invoked exactly once, during controller activation.
	ClearDeferredMainLoad()
}

// ExperimentalLoader loads features flagged experimental through an
// alternate path. Optional; hosts without one fall back to RequestLoad.
type ExperimentalLoader interface {
	LoadExperimental(feature catalog.Feature) error
}
