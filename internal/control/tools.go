package control

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"featgate/internal/api"
)

// registerTools declares the control tool surface on the MCP server.
// Every handler goes through the api registry, so the set of tools stays
// valid regardless of which concrete implementations the process wired up.
func (s *Server) registerTools() {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return
	}

	// Catalog
	featureListTool := mcp.NewTool("feature_list",
		mcp.WithDescription("List all catalog features with their default rules and group memberships"),
	)
	srv.AddTool(featureListTool, s.handleFeatureList)

	featureGetTool := mcp.NewTool("feature_get",
		mcp.WithDescription("Get the catalog entry for a single feature"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the feature to look up"),
		),
	)
	srv.AddTool(featureGetTool, s.handleFeatureGet)

	groupListTool := mcp.NewTool("group_list",
		mcp.WithDescription("List all feature groups with their resolved members"),
	)
	srv.AddTool(groupListTool, s.handleGroupList)

	groupGetTool := mcp.NewTool("group_get",
		mcp.WithDescription("Get a single feature group with its resolved members"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the group to look up"),
		),
	)
	srv.AddTool(groupGetTool, s.handleGroupGet)

	// Controller
	controllerStatusTool := mcp.NewTool("controller_status",
		mcp.WithDescription("Get the lifecycle controller state and the currently active features"),
	)
	srv.AddTool(controllerStatusTool, s.handleControllerStatus)

	featureResolveTool := mcp.NewTool("feature_resolve",
		mcp.WithDescription("Resolve the configured enablement outcome for every feature without changing any state"),
	)
	srv.AddTool(featureResolveTool, s.handleFeatureResolve)

	featureReconcileTool := mcp.NewTool("feature_reconcile",
		mcp.WithDescription("Run one reconciliation pass so the active features match the configured enablement"),
	)
	srv.AddTool(featureReconcileTool, s.handleFeatureReconcile)

	featureSerializeTool := mcp.NewTool("feature_serialize",
		mcp.WithDescription("Request state persistence for every feature that is still active"),
	)
	srv.AddTool(featureSerializeTool, s.handleFeatureSerialize)

	// Settings
	settingsGetTool := mcp.NewTool("settings_get",
		mcp.WithDescription("Get the configured rule table and enabled-groups selection"),
	)
	srv.AddTool(settingsGetTool, s.handleSettingsGet)

	ruleSetTool := mcp.NewTool("rule_set",
		mcp.WithDescription("Set an explicit enablement rule for a feature"),
		mcp.WithString("feature",
			mcp.Required(),
			mcp.Description("ID of the feature to configure"),
		),
		mcp.WithString("rule",
			mcp.Required(),
			mcp.Description("Rule to apply: always, never, or default"),
		),
	)
	srv.AddTool(ruleSetTool, s.handleRuleSet)

	ruleClearTool := mcp.NewTool("rule_clear",
		mcp.WithDescription("Remove the explicit rule for a feature so its default applies again"),
		mcp.WithString("feature",
			mcp.Required(),
			mcp.Description("ID of the feature whose rule should be cleared"),
		),
	)
	srv.AddTool(ruleClearTool, s.handleRuleClear)

	groupsSetTool := mcp.NewTool("groups_set",
		mcp.WithDescription("Replace the enabled-groups selection; omit groups to clear the selection so every group counts as eligible"),
		mcp.WithArray("groups",
			mcp.Description("Group names to enable; an empty array selects no groups"),
		),
	)
	srv.AddTool(groupsSetTool, s.handleGroupsSet)

	// Events
	featureEventsTool := mcp.NewTool("feature_events",
		mcp.WithDescription("List recorded lifecycle events, newest first"),
		mcp.WithString("feature",
			mcp.Description("Only events about this feature ID"),
		),
		mcp.WithString("reason",
			mcp.Description("Only events with this reason, e.g. FeatureActivated"),
		),
		mcp.WithString("type",
			mcp.Description("Only events of this type: Normal or Warning"),
		),
		mcp.WithString("since",
			mcp.Description("Only events after this time; accepts a duration like 1h or an RFC3339 timestamp"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return"),
		),
	)
	srv.AddTool(featureEventsTool, s.handleFeatureEvents)
}

// jsonResult marshals the payload and wraps it as a text tool result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleFeatureList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := api.GetCatalog()
	if catalog == nil {
		return mcp.NewToolResultError("catalog not available"), nil
	}
	return jsonResult(api.FeatureListResponse{Features: catalog.ListFeatures()})
}

func (s *Server) handleFeatureGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required"), nil
	}

	catalog := api.GetCatalog()
	if catalog == nil {
		return mcp.NewToolResultError("catalog not available"), nil
	}

	feature, err := catalog.GetFeature(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(feature)
}

func (s *Server) handleGroupList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := api.GetCatalog()
	if catalog == nil {
		return mcp.NewToolResultError("catalog not available"), nil
	}
	return jsonResult(api.GroupListResponse{Groups: catalog.ListGroups()})
}

func (s *Server) handleGroupGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required"), nil
	}

	catalog := api.GetCatalog()
	if catalog == nil {
		return mcp.NewToolResultError("catalog not available"), nil
	}

	group, err := catalog.GetGroup(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(group)
}

func (s *Server) handleControllerStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	controller := api.GetController()
	if controller == nil {
		return mcp.NewToolResultError("controller not available"), nil
	}
	return jsonResult(controller.Status())
}

func (s *Server) handleFeatureResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	controller := api.GetController()
	if controller == nil {
		return mcp.NewToolResultError("controller not available"), nil
	}
	return jsonResult(controller.Resolve())
}

func (s *Server) handleFeatureReconcile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	controller := api.GetController()
	if controller == nil {
		return mcp.NewToolResultError("controller not available"), nil
	}

	result, err := controller.Reconcile()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Reconciliation failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (s *Server) handleFeatureSerialize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	controller := api.GetController()
	if controller == nil {
		return mcp.NewToolResultError("controller not available"), nil
	}

	if err := controller.Serialize(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Serialization failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"serialized": true,
		"active":     controller.Status().ActiveFeatures,
	})
}

func (s *Server) handleSettingsGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := api.GetSettings()
	if settings == nil {
		return mcp.NewToolResultError("settings not available"), nil
	}

	result := map[string]interface{}{
		"rules": settings.RuleTable(),
	}
	if groups, explicit := settings.EnabledGroups(); explicit {
		result["enabled_groups"] = groups
	} else {
		result["enabled_groups"] = nil
	}
	return jsonResult(result)
}

func (s *Server) handleRuleSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	feature, err := request.RequireString("feature")
	if err != nil {
		return mcp.NewToolResultError("feature argument is required"), nil
	}
	rule, err := request.RequireString("rule")
	if err != nil {
		return mcp.NewToolResultError("rule argument is required"), nil
	}

	settings := api.GetSettings()
	if settings == nil {
		return mcp.NewToolResultError("settings not available"), nil
	}

	if err := settings.SetRule(feature, rule); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]interface{}{
		"feature": feature,
		"rule":    rule,
	})
}

func (s *Server) handleRuleClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	feature, err := request.RequireString("feature")
	if err != nil {
		return mcp.NewToolResultError("feature argument is required"), nil
	}

	settings := api.GetSettings()
	if settings == nil {
		return mcp.NewToolResultError("settings not available"), nil
	}

	if err := settings.ClearRule(feature); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]interface{}{
		"feature": feature,
		"rule":    nil,
	})
}

func (s *Server) handleGroupsSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := api.GetSettings()
	if settings == nil {
		return mcp.NewToolResultError("settings not available"), nil
	}

	// A missing groups argument clears the selection; an empty array keeps
	// an explicit selection of no groups.
	var groups []string
	if raw, ok := request.GetArguments()["groups"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return mcp.NewToolResultError("groups must be an array of group names"), nil
		}
		groups = make([]string, 0, len(list))
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				return mcp.NewToolResultError("groups must be an array of group names"), nil
			}
			groups = append(groups, name)
		}
	}

	if err := settings.SetEnabledGroups(groups); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if groups == nil {
		return jsonResult(map[string]interface{}{"enabled_groups": nil})
	}
	return jsonResult(map[string]interface{}{"enabled_groups": groups})
}

func (s *Server) handleFeatureEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := api.GetEventSource()
	if source == nil {
		return mcp.NewToolResultError("event history not available"), nil
	}

	args := request.GetArguments()
	var filter api.EventFilter

	if v, ok := args["feature"]; ok {
		if str, ok := v.(string); ok {
			filter.FeatureID = str
		}
	}
	if v, ok := args["reason"]; ok {
		if str, ok := v.(string); ok {
			filter.Reason = str
		}
	}
	if v, ok := args["type"]; ok {
		if str, ok := v.(string); ok {
			filter.Type = str
		}
	}
	if v, ok := args["since"]; ok {
		if str, ok := v.(string); ok && str != "" {
			since, err := parseSince(str)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid since value: %v", err)), nil
			}
			filter.Since = since
		}
	}
	if v, ok := args["limit"]; ok {
		if n, ok := v.(float64); ok && n > 0 {
			filter.Limit = int(n)
		}
	}

	events := source.Events(filter)
	return jsonResult(map[string]interface{}{
		"events": events,
		"total":  len(events),
	})
}

// parseSince accepts a relative duration ("30m", "1h") or an absolute
// RFC3339 timestamp or date.
func parseSince(value string) (time.Time, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return time.Now().Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("expected a duration like 1h or an RFC3339 timestamp, got %q", value)
}
