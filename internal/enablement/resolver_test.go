package enablement

import (
	"testing"

	"featgate/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feature(id string, provides ...string) catalog.Feature {
	return catalog.Feature{ID: id, Name: "Feature " + id, Provides: provides}
}

func newIndex(t *testing.T, features []catalog.Feature, defs map[string][]string) *catalog.GroupIndex {
	t.Helper()
	c, err := catalog.NewCatalog(features)
	require.NoError(t, err)
	return catalog.BuildGroupIndex(c, defs)
}

func enabledIDs(features []catalog.Feature) []string {
	ids := make([]string, len(features))
	for i, f := range features {
		ids[i] = f.ID
	}
	return ids
}

func TestResolveUnsetSelectionEnablesAllDefaults(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b"), feature("c")}
	idx := newIndex(t, features, nil)

	got := Resolve(features, nil, AllGroups(), idx)

	assert.Equal(t, []string{"a", "b", "c"}, enabledIDs(got))
}

func TestResolveExplicitEmptySelectionDisablesDefaults(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b")}
	idx := newIndex(t, features, map[string][]string{"g": {"a", "b"}})

	got := Resolve(features, nil, SelectGroups(nil), idx)

	assert.Empty(t, got)
}

func TestResolveGroupEligibility(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b"), feature("c")}
	idx := newIndex(t, features, map[string][]string{
		"g1": {"a"},
		"g2": {"b"},
	})

	got := Resolve(features, nil, SelectGroups([]string{"g1"}), idx)

	assert.Equal(t, []string{"a"}, enabledIDs(got))
}

func TestResolveAlwaysIgnoresGroupSelection(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b")}
	idx := newIndex(t, features, map[string][]string{"g": {"a"}})
	rules := map[string]Rule{"b": RuleAlways}

	got := Resolve(features, rules, SelectGroups([]string{"g"}), idx)

	assert.Equal(t, []string{"a", "b"}, enabledIDs(got))
}

func TestResolveNeverDisablesEligibleFeature(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b")}
	idx := newIndex(t, features, map[string][]string{"g": {"a", "b"}})
	rules := map[string]Rule{"b": RuleNever}

	got := Resolve(features, rules, SelectGroups([]string{"g"}), idx)

	assert.Equal(t, []string{"a"}, enabledIDs(got))
}

func TestResolveRequiredOverridesExplicitNever(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b")}
	idx := newIndex(t, features, map[string][]string{
		catalog.RequiredGroupName: {"b"},
	})
	rules := map[string]Rule{"b": RuleNever}

	got := Resolve(features, rules, AllGroups(), idx)

	assert.Contains(t, enabledIDs(got), "b")
}

func TestResolveRequiredIgnoresGroupSelection(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("b")}
	idx := newIndex(t, features, map[string][]string{
		catalog.RequiredGroupName: {"b"},
		"g1":                      {"a"},
	})

	// b is not in g1 but required membership wins.
	got := Resolve(features, nil, SelectGroups([]string{"g1"}), idx)

	assert.Equal(t, []string{"a", "b"}, enabledIDs(got))
}

func TestResolveSampleDefaultsToNever(t *testing.T) {
	features := []catalog.Feature{feature("a"), feature("sample-demo")}
	idx := newIndex(t, features, nil)

	got := Resolve(features, nil, AllGroups(), idx)

	assert.Equal(t, []string{"a"}, enabledIDs(got))
}

func TestResolveSampleEnabledByExplicitRule(t *testing.T) {
	features := []catalog.Feature{feature("sample-demo")}
	idx := newIndex(t, features, nil)
	rules := map[string]Rule{"sample-demo": RuleAlways}

	got := Resolve(features, rules, AllGroups(), idx)

	assert.Equal(t, []string{"sample-demo"}, enabledIDs(got))
}

func TestResolveSampleEnabledByRequiredGroup(t *testing.T) {
	features := []catalog.Feature{feature("sample-demo")}
	idx := newIndex(t, features, map[string][]string{
		catalog.RequiredGroupName: {"sample-demo"},
	})

	got := Resolve(features, nil, AllGroups(), idx)

	assert.Equal(t, []string{"sample-demo"}, enabledIDs(got))
}

func TestResolvePreservesCatalogOrder(t *testing.T) {
	features := []catalog.Feature{
		feature("z"), feature("m"), feature("a"),
	}
	idx := newIndex(t, features, nil)

	got := Resolve(features, nil, AllGroups(), idx)

	assert.Equal(t, []string{"z", "m", "a"}, enabledIDs(got))
}

func TestResolveIsPure(t *testing.T) {
	features := []catalog.Feature{feature("a", "capX"), feature("b")}
	idx := newIndex(t, features, map[string][]string{"g": {"a"}})
	rules := map[string]Rule{"b": RuleAlways}
	selection := SelectGroups([]string{"g"})

	first := Resolve(features, rules, selection, idx)
	second := Resolve(features, rules, selection, idx)

	assert.Equal(t, enabledIDs(first), enabledIDs(second))
	assert.Equal(t, []string{"a", "b"}, enabledIDs(features), "input slice must not be reordered")
	assert.Equal(t, map[string]Rule{"b": RuleAlways}, rules, "rule table must not be mutated")
}

// The combined walkthrough: required and always beat the group selection,
// and the activation order boosts the provider of the priority capability.
func TestResolveAndReorderScenario(t *testing.T) {
	features := []catalog.Feature{
		feature("f1", "capX"),
		feature("f2"),
		feature("f3"),
	}
	idx := newIndex(t, features, map[string][]string{
		catalog.RequiredGroupName: {"f3"},
		"g1":                      {"f1"},
	})
	rules := map[string]Rule{"f2": RuleAlways}

	resolved := Resolve(features, rules, SelectGroups([]string{"g1"}), idx)
	assert.Equal(t, []string{"f1", "f2", "f3"}, enabledIDs(resolved))

	ordered := catalog.Reorder(resolved, "capX")
	assert.Equal(t, []string{"f1", "f2", "f3"}, enabledIDs(ordered))
}

func TestExplainReasons(t *testing.T) {
	features := []catalog.Feature{
		feature("req"),
		feature("always"),
		feature("never"),
		feature("in-group"),
		feature("out-of-group"),
	}
	idx := newIndex(t, features, map[string][]string{
		catalog.RequiredGroupName: {"req"},
		"g":                       {"in-group"},
	})
	rules := map[string]Rule{
		"always": RuleAlways,
		"never":  RuleNever,
		// req keeps its never rule to prove required still wins
		"req": RuleNever,
	}

	decisions := Explain(features, rules, SelectGroups([]string{"g"}), idx)
	require.Len(t, decisions, 5)

	byID := map[string]Decision{}
	for _, d := range decisions {
		byID[d.Feature.ID] = d
	}

	assert.True(t, byID["req"].Enabled)
	assert.Equal(t, ReasonRequiredGroup, byID["req"].Reason)

	assert.True(t, byID["always"].Enabled)
	assert.Equal(t, ReasonRuleAlways, byID["always"].Reason)

	assert.False(t, byID["never"].Enabled)
	assert.Equal(t, ReasonRuleNever, byID["never"].Reason)

	assert.True(t, byID["in-group"].Enabled)
	assert.Equal(t, ReasonDefaultEligible, byID["in-group"].Reason)

	assert.False(t, byID["out-of-group"].Enabled)
	assert.Equal(t, ReasonDefaultNotInGroups, byID["out-of-group"].Reason)
}

func TestExplainCoversEveryFeatureInOrder(t *testing.T) {
	features := []catalog.Feature{feature("b"), feature("a")}
	idx := newIndex(t, features, nil)

	decisions := Explain(features, nil, AllGroups(), idx)

	require.Len(t, decisions, 2)
	assert.Equal(t, "b", decisions[0].Feature.ID)
	assert.Equal(t, "a", decisions[1].Feature.ID)
}

func TestResolveUnknownGroupInSelection(t *testing.T) {
	features := []catalog.Feature{feature("a")}
	idx := newIndex(t, features, map[string][]string{"g": {"a"}})

	// Selecting an undefined group contributes no members.
	got := Resolve(features, nil, SelectGroups([]string{"does-not-exist"}), idx)

	assert.Empty(t, got)
}
