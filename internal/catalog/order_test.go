package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func idsOf(features []Feature) []string {
	ids := make([]string, len(features))
	for i, f := range features {
		ids[i] = f.ID
	}
	return ids
}

func TestReorderBoostsPriorityProviders(t *testing.T) {
	features := []Feature{
		testFeature("a"),
		testFeature("b", DefaultPriorityCapability),
		testFeature("c"),
		testFeature("d", DefaultPriorityCapability, "extra.cap"),
		testFeature("e"),
	}

	got := Reorder(features, DefaultPriorityCapability)

	// Providers first, both partitions in original relative order.
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, idsOf(got))
}

func TestReorderWithoutProvidersKeepsOrder(t *testing.T) {
	features := []Feature{testFeature("x"), testFeature("y"), testFeature("z")}

	got := Reorder(features, DefaultPriorityCapability)

	assert.Equal(t, []string{"x", "y", "z"}, idsOf(got))
}

func TestReorderAllProvidersKeepsOrder(t *testing.T) {
	features := []Feature{
		testFeature("x", DefaultPriorityCapability),
		testFeature("y", DefaultPriorityCapability),
	}

	got := Reorder(features, DefaultPriorityCapability)

	assert.Equal(t, []string{"x", "y"}, idsOf(got))
}

func TestReorderEmptyCapabilityDisablesBoost(t *testing.T) {
	features := []Feature{
		testFeature("a"),
		testFeature("b", DefaultPriorityCapability),
	}

	got := Reorder(features, "")

	assert.Equal(t, []string{"a", "b"}, idsOf(got))
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	features := []Feature{
		testFeature("a"),
		testFeature("b", DefaultPriorityCapability),
	}

	_ = Reorder(features, DefaultPriorityCapability)

	assert.Equal(t, []string{"a", "b"}, idsOf(features))
}

func TestReorderEmptyInput(t *testing.T) {
	assert.Empty(t, Reorder(nil, DefaultPriorityCapability))
}
