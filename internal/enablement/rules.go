package enablement

import (
	"strings"

	"featgate/internal/catalog"
)

// Rule is the tri-state enablement rule configurable per feature.
type Rule string

const (
	// RuleAlways enables the feature regardless of group selection.
	RuleAlways Rule = "always"

	// RuleNever disables the feature (unless it is in the required group).
	RuleNever Rule = "never"

	// RuleDefault defers to the group selection.
	RuleDefault Rule = "default"
)

// ParseRule converts a raw string into a Rule. Matching is case-insensitive
// and tolerant of surrounding whitespace.
func ParseRule(s string) (Rule, bool) {
	switch Rule(strings.ToLower(strings.TrimSpace(s))) {
	case RuleAlways:
		return RuleAlways, true
	case RuleNever:
		return RuleNever, true
	case RuleDefault:
		return RuleDefault, true
	}
	return "", false
}

// DefaultRule returns the rule applied to a feature that has no entry in
// the rule table. Sample features default to never, everything else defers
// to the group selection.
func DefaultRule(featureID string) Rule {
	if catalog.IsSampleID(featureID) {
		return RuleNever
	}
	return RuleDefault
}

// EffectiveRule returns the rule that applies to the feature: the table
// entry if one exists, otherwise the feature's default rule.
func EffectiveRule(featureID string, rules map[string]Rule) Rule {
	if r, ok := rules[featureID]; ok {
		return r
	}
	return DefaultRule(featureID)
}
