package lifecycle

import (
	"fmt"
	"strings"

	"featgate/internal/catalog"
	"featgate/internal/enablement"
)

// ConfigSchema is the JSON-Schema-shaped document describing the feature
// configuration surface. It is registered with the host during Load so the
// host's configuration system can validate and document feature settings.
type ConfigSchema map[string]interface{}

// GenerateSchema builds the configuration schema for the given catalog:
// one tri-state rule entry per feature plus the enabled-groups list, and
// each feature's own configuration schema merged in under its ID.
//
// With developmentMode set, rule entries additionally document the
// capabilities the feature provides and consumes.
func GenerateSchema(features []catalog.Feature, developmentMode bool) ConfigSchema {
	ruleProps := make(map[string]interface{}, len(features))
	rootProps := map[string]interface{}{}

	for _, f := range features {
		ruleProps[f.ID] = ruleEntry(f, developmentMode)
		if f.ConfigSchema != nil {
			rootProps[f.ID] = f.ConfigSchema
		}
	}

	rootProps["features"] = map[string]interface{}{
		"type":        "object",
		"description": "Feature enablement settings",
		"properties": map[string]interface{}{
			"rules": map[string]interface{}{
				"type":                 "object",
				"description":          "Per-feature enablement rule",
				"properties":           ruleProps,
				"additionalProperties": false,
			},
			"enabledGroups": map[string]interface{}{
				"type":        "array",
				"description": "Names of enabled feature groups. Omit the key entirely to make every feature group-eligible.",
				"items":       map[string]interface{}{"type": "string"},
			},
		},
	}

	return ConfigSchema{
		"type":       "object",
		"properties": rootProps,
	}
}

func ruleEntry(f catalog.Feature, developmentMode bool) map[string]interface{} {
	description := f.Description
	if description == "" {
		description = f.Name
	}
	if developmentMode {
		if annotation := capabilityAnnotation(f); annotation != "" {
			description = fmt.Sprintf("%s (%s)", description, annotation)
		}
	}

	return map[string]interface{}{
		"type": "string",
		"enum": []string{
			string(enablement.RuleAlways),
			string(enablement.RuleNever),
			string(enablement.RuleDefault),
		},
		"default":     string(enablement.DefaultRule(f.ID)),
		"description": description,
	}
}

func capabilityAnnotation(f catalog.Feature) string {
	var parts []string
	if len(f.Provides) > 0 {
		parts = append(parts, "provides: "+strings.Join(f.Provides, ", "))
	}
	if len(f.Consumes) > 0 {
		parts = append(parts, "consumes: "+strings.Join(f.Consumes, ", "))
	}
	return strings.Join(parts, "; ")
}
