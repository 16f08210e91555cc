package api

// Canonical enablement rule values shared across the API boundary.
const (
	RuleAlways  = "always"
	RuleNever   = "never"
	RuleDefault = "default"
)

// Setting keys for the enablement settings, as exposed through host
// configuration lookups and change notifications. They match the YAML
// paths under `features:` in settings.yaml.
const (
	SettingFeatureRules  = "features.rules"
	SettingEnabledGroups = "features.enabledGroups"
)

// ValidRule reports whether the given string is a recognized rule value.
func ValidRule(rule string) bool {
	switch rule {
	case RuleAlways, RuleNever, RuleDefault:
		return true
	}
	return false
}

// SettingsHandler provides access to the mutable enablement settings:
// the per-feature rule table and the enabled-groups selection.
//
// Mutations are persisted by the implementation; a running controller picks
// them up through its config-change subscriptions rather than through this
// interface.
type SettingsHandler interface {
	// RuleTable returns the configured per-feature rules. Features without
	// an entry fall back to their default rule.
	RuleTable() map[string]string

	// EnabledGroups returns the configured group selection. The second
	// return is false when no selection is configured, in which case every
	// feature counts as group-eligible.
	EnabledGroups() ([]string, bool)

	// SetRule configures an explicit rule for a feature. Returns an
	// InvalidRuleError for values outside always/never/default.
	SetRule(featureID, rule string) error

	// ClearRule removes the explicit rule for a feature so its default
	// rule applies again. Clearing an absent rule is not an error.
	ClearRule(featureID string) error

	// SetEnabledGroups replaces the group selection. An empty, non-nil
	// slice selects no groups; nil clears the selection entirely.
	SetEnabledGroups(groups []string) error
}
