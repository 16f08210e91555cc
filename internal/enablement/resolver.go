package enablement

import (
	"featgate/internal/catalog"
)

// GroupSelection is the configured set of enabled feature groups.
// The zero value means "no selection configured", which makes every feature
// group-eligible. An explicit empty selection makes no feature eligible.
type GroupSelection struct {
	Groups   []string
	Explicit bool
}

// AllGroups returns the unset selection under which every feature is
// group-eligible.
func AllGroups() GroupSelection {
	return GroupSelection{}
}

// SelectGroups returns an explicit selection of the named groups.
func SelectGroups(names []string) GroupSelection {
	return GroupSelection{Groups: names, Explicit: true}
}

// Reason names the precedence clause that decided a feature's outcome.
type Reason string

const (
	ReasonRequiredGroup      Reason = "required-group"
	ReasonRuleAlways         Reason = "rule-always"
	ReasonRuleNever          Reason = "rule-never"
	ReasonDefaultEligible    Reason = "default-eligible"
	ReasonDefaultNotInGroups Reason = "default-not-in-groups"
)

// Decision is the explained enablement outcome for a single feature.
type Decision struct {
	Feature catalog.Feature
	Rule    Rule
	Enabled bool
	Reason  Reason
}

// Resolve computes the enabled subset of the given features, preserving
// their order. It is pure: no I/O, no hidden state, and identical inputs
// always yield identical results.
func Resolve(features []catalog.Feature, rules map[string]Rule, selection GroupSelection, groups *catalog.GroupIndex) []catalog.Feature {
	eligible := eligibleSet(features, selection, groups)

	var enabled []catalog.Feature
	for _, f := range features {
		on, _ := decide(f, rules, eligible, groups)
		if on {
			enabled = append(enabled, f)
		}
	}
	return enabled
}

// Explain computes the full per-feature outcome, one decision per input
// feature in input order. Like Resolve it is pure.
func Explain(features []catalog.Feature, rules map[string]Rule, selection GroupSelection, groups *catalog.GroupIndex) []Decision {
	eligible := eligibleSet(features, selection, groups)

	decisions := make([]Decision, 0, len(features))
	for _, f := range features {
		on, reason := decide(f, rules, eligible, groups)
		decisions = append(decisions, Decision{
			Feature: f,
			Rule:    EffectiveRule(f.ID, rules),
			Enabled: on,
			Reason:  reason,
		})
	}
	return decisions
}

// eligibleSet returns the IDs eligible through the group selection, or nil
// when the selection is unset and everything is eligible.
func eligibleSet(features []catalog.Feature, selection GroupSelection, groups *catalog.GroupIndex) map[string]bool {
	if !selection.Explicit {
		return nil
	}
	eligible := make(map[string]bool)
	for _, name := range selection.Groups {
		for _, id := range groups.Members(name) {
			eligible[id] = true
		}
	}
	return eligible
}

func decide(f catalog.Feature, rules map[string]Rule, eligible map[string]bool, groups *catalog.GroupIndex) (bool, Reason) {
	// Required membership overrides everything, including an explicit never.
	if groups.IsRequired(f.ID) {
		return true, ReasonRequiredGroup
	}

	switch EffectiveRule(f.ID, rules) {
	case RuleAlways:
		return true, ReasonRuleAlways
	case RuleNever:
		return false, ReasonRuleNever
	default:
		if eligible == nil || eligible[f.ID] {
			return true, ReasonDefaultEligible
		}
		return false, ReasonDefaultNotInGroups
	}
}
