package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featgate/internal/catalog"
)

func schemaFeatures() []catalog.Feature {
	return []catalog.Feature{
		{ID: "search", Name: "Search", Description: "Full-text search", Provides: []string{"lookup.sync"}},
		{ID: "sample-gallery", Name: "Sample Gallery", Consumes: []string{"lookup.sync"}},
	}
}

func ruleProperties(t *testing.T, schema ConfigSchema) map[string]interface{} {
	t.Helper()
	root, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	features, ok := root["features"].(map[string]interface{})
	require.True(t, ok)
	props, ok := features["properties"].(map[string]interface{})
	require.True(t, ok)
	rules, ok := props["rules"].(map[string]interface{})
	require.True(t, ok)
	ruleProps, ok := rules["properties"].(map[string]interface{})
	require.True(t, ok)
	return ruleProps
}

func TestGenerateSchemaRuleEntries(t *testing.T) {
	schema := GenerateSchema(schemaFeatures(), false)

	props := ruleProperties(t, schema)
	require.Contains(t, props, "search")
	require.Contains(t, props, "sample-gallery")

	search := props["search"].(map[string]interface{})
	assert.Equal(t, []string{"always", "never", "default"}, search["enum"])
	assert.Equal(t, "default", search["default"])
	assert.Equal(t, "Full-text search", search["description"])

	sample := props["sample-gallery"].(map[string]interface{})
	assert.Equal(t, "never", sample["default"],
		"sample features default to never")
	assert.Equal(t, "Sample Gallery", sample["description"],
		"description falls back to the display name")
}

func TestGenerateSchemaEnabledGroups(t *testing.T) {
	schema := GenerateSchema(schemaFeatures(), false)

	root := schema["properties"].(map[string]interface{})
	features := root["features"].(map[string]interface{})
	props := features["properties"].(map[string]interface{})

	groups, ok := props["enabledGroups"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "array", groups["type"])
	items := groups["items"].(map[string]interface{})
	assert.Equal(t, "string", items["type"])
}

func TestGenerateSchemaDevelopmentAnnotations(t *testing.T) {
	plain := ruleProperties(t, GenerateSchema(schemaFeatures(), false))
	dev := ruleProperties(t, GenerateSchema(schemaFeatures(), true))

	plainDesc := plain["search"].(map[string]interface{})["description"].(string)
	devDesc := dev["search"].(map[string]interface{})["description"].(string)

	assert.NotContains(t, plainDesc, "provides:")
	assert.Contains(t, devDesc, "provides: lookup.sync")

	devSample := dev["sample-gallery"].(map[string]interface{})["description"].(string)
	assert.Contains(t, devSample, "consumes: lookup.sync")
}

func TestGenerateSchemaMergesFeatureSchemas(t *testing.T) {
	own := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"indexPath": map[string]interface{}{"type": "string"},
		},
	}
	features := []catalog.Feature{
		{ID: "search", Name: "Search", ConfigSchema: own},
		{ID: "plain", Name: "Plain"},
	}

	schema := GenerateSchema(features, false)
	root := schema["properties"].(map[string]interface{})

	assert.Equal(t, own, root["search"],
		"a feature's own schema is mounted under its ID")
	assert.NotContains(t, root, "plain",
		"features without a schema contribute only a rule entry")
}

func TestGenerateSchemaEmptyCatalog(t *testing.T) {
	schema := GenerateSchema(nil, false)

	root, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, root, "features")

	props := ruleProperties(t, schema)
	assert.Empty(t, props)
}
