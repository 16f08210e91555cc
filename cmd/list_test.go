package cmd

import (
	"testing"
)

func TestListResourceMappings(t *testing.T) {
	tests := []struct {
		resourceType string
		toolName     string
	}{
		{"features", "feature_list"},
		{"groups", "group_list"},
		{"events", "feature_events"},
	}

	for _, tt := range tests {
		t.Run(tt.resourceType, func(t *testing.T) {
			tool, ok := listResourceMappings[tt.resourceType]
			if !ok {
				t.Fatalf("Expected resource type %q to be mapped", tt.resourceType)
			}
			if tool != tt.toolName {
				t.Errorf("Expected %q to map to %q, got %q", tt.resourceType, tt.toolName, tool)
			}
		})
	}

	if len(listResourceMappings) != len(tests) {
		t.Errorf("Expected %d resource mappings, got %d", len(tests), len(listResourceMappings))
	}
}

func TestListResourceTypesMatchMappings(t *testing.T) {
	// Every advertised resource type must have a tool mapping
	for _, rt := range listResourceTypes {
		if _, ok := listResourceMappings[rt]; !ok {
			t.Errorf("Resource type %q is advertised but has no tool mapping", rt)
		}
	}
}

func TestRunListUnknownResourceType(t *testing.T) {
	err := runList(listCmd, []string{"workflows"})
	if err == nil {
		t.Fatal("Expected error for unknown resource type")
	}
}

func TestListCommandProperties(t *testing.T) {
	if listCmd.Use != "list <resource-type>" {
		t.Errorf("Expected Use to be 'list <resource-type>', got %s", listCmd.Use)
	}

	if listCmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}

	if listCmd.Args == nil {
		t.Error("Expected Args validator to be set")
	}
}
