package control

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featgate/internal/api"
)

type fakeCatalog struct {
	features []api.FeatureInfo
	groups   []api.GroupInfo
}

func (f *fakeCatalog) ListFeatures() []api.FeatureInfo { return f.features }

func (f *fakeCatalog) GetFeature(id string) (*api.FeatureInfo, error) {
	for i := range f.features {
		if f.features[i].ID == id {
			return &f.features[i], nil
		}
	}
	return nil, api.NewFeatureNotFoundError(id)
}

func (f *fakeCatalog) ListGroups() []api.GroupInfo { return f.groups }

func (f *fakeCatalog) GetGroup(name string) (*api.GroupInfo, error) {
	for i := range f.groups {
		if f.groups[i].Name == name {
			return &f.groups[i], nil
		}
	}
	return nil, api.NewGroupNotFoundError(name)
}

type fakeController struct {
	status         api.ControllerStatus
	resolution     api.ResolutionInfo
	reconcile      *api.ReconcileResult
	reconcileErr   error
	serializeErr   error
	serializeCalls int
}

func (f *fakeController) Status() api.ControllerStatus { return f.status }
func (f *fakeController) Resolve() api.ResolutionInfo  { return f.resolution }

func (f *fakeController) Reconcile() (*api.ReconcileResult, error) {
	return f.reconcile, f.reconcileErr
}

func (f *fakeController) Serialize() error {
	f.serializeCalls++
	return f.serializeErr
}

type fakeSettings struct {
	rules    map[string]string
	groups   []string
	explicit bool

	setFeature      string
	setRule         string
	cleared         []string
	setGroups       []string
	setGroupsCalled bool
}

func (f *fakeSettings) RuleTable() map[string]string    { return f.rules }
func (f *fakeSettings) EnabledGroups() ([]string, bool) { return f.groups, f.explicit }

func (f *fakeSettings) SetRule(featureID, rule string) error {
	if !api.ValidRule(rule) {
		return &api.InvalidRuleError{Value: rule}
	}
	f.setFeature = featureID
	f.setRule = rule
	return nil
}

func (f *fakeSettings) ClearRule(featureID string) error {
	f.cleared = append(f.cleared, featureID)
	return nil
}

func (f *fakeSettings) SetEnabledGroups(groups []string) error {
	f.setGroups = groups
	f.setGroupsCalled = true
	return nil
}

type fakeEventSource struct {
	lastFilter api.EventFilter
	events     []api.EventInfo
}

func (f *fakeEventSource) Events(filter api.EventFilter) []api.EventInfo {
	f.lastFilter = filter
	return f.events
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), v))
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)
	return NewServer(ServerConfig{Host: "localhost", Port: 8090, Version: "test"})
}

func TestFeatureListTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{features: []api.FeatureInfo{
		{ID: "search", Name: "Search", DefaultRule: api.RuleDefault},
		{ID: "sample-gallery", Name: "Gallery", DefaultRule: api.RuleNever},
	}})

	result, err := s.handleFeatureList(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var resp api.FeatureListResponse
	decodeResult(t, result, &resp)
	require.Len(t, resp.Features, 2)
	assert.Equal(t, "search", resp.Features[0].ID)
	assert.Equal(t, api.RuleNever, resp.Features[1].DefaultRule)
}

func TestFeatureListToolWithoutCatalog(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleFeatureList(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestFeatureGetTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{features: []api.FeatureInfo{
		{ID: "search", Name: "Search", Provides: []string{"lookup.sync"}},
	}})

	result, err := s.handleFeatureGet(context.Background(), toolRequest(map[string]interface{}{"id": "search"}))
	require.NoError(t, err)

	var info api.FeatureInfo
	decodeResult(t, result, &info)
	assert.Equal(t, "Search", info.Name)
	assert.Equal(t, []string{"lookup.sync"}, info.Provides)
}

func TestFeatureGetToolNotFound(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{})

	result, err := s.handleFeatureGet(context.Background(), toolRequest(map[string]interface{}{"id": "nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestFeatureGetToolRequiresID(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{})

	result, err := s.handleFeatureGet(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGroupListTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{groups: []api.GroupInfo{
		{Name: "required", Members: []string{"telemetry"}, Required: true},
		{Name: "extras", Members: []string{"gallery"}},
	}})

	result, err := s.handleGroupList(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var resp api.GroupListResponse
	decodeResult(t, result, &resp)
	require.Len(t, resp.Groups, 2)
	assert.True(t, resp.Groups[0].Required)
	assert.Equal(t, "extras", resp.Groups[1].Name)
}

func TestGroupGetTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{groups: []api.GroupInfo{
		{Name: "required", Members: []string{"telemetry"}, Required: true},
	}})

	result, err := s.handleGroupGet(context.Background(), toolRequest(map[string]interface{}{"name": "required"}))
	require.NoError(t, err)

	var group api.GroupInfo
	decodeResult(t, result, &group)
	assert.Equal(t, "required", group.Name)
	assert.True(t, group.Required)
}

func TestGroupGetToolNotFound(t *testing.T) {
	s := newTestServer(t)
	api.RegisterCatalog(&fakeCatalog{})

	result, err := s.handleGroupGet(context.Background(), toolRequest(map[string]interface{}{"name": "nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestControllerStatusTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterController(&fakeController{status: api.ControllerStatus{
		State:              api.ControllerActivated,
		ActiveFeatures:     []string{"search", "gallery"},
		PriorityCapability: "lookup.sync",
	}})

	result, err := s.handleControllerStatus(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var status api.ControllerStatus
	decodeResult(t, result, &status)
	assert.Equal(t, api.ControllerActivated, status.State)
	assert.Equal(t, []string{"search", "gallery"}, status.ActiveFeatures)
}

func TestFeatureResolveTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterController(&fakeController{resolution: api.ResolutionInfo{
		Enabled: []string{"search"},
		Decisions: []api.FeatureDecision{
			{ID: "search", Rule: api.RuleDefault, Enabled: true, Reason: "default-eligible"},
		},
	}})

	result, err := s.handleFeatureResolve(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var info api.ResolutionInfo
	decodeResult(t, result, &info)
	assert.Equal(t, []string{"search"}, info.Enabled)
	require.Len(t, info.Decisions, 1)
	assert.Equal(t, "default-eligible", info.Decisions[0].Reason)
}

func TestFeatureReconcileTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterController(&fakeController{reconcile: &api.ReconcileResult{
		Activated: []string{"gallery"},
		Active:    []string{"search", "gallery"},
	}})

	result, err := s.handleFeatureReconcile(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var res api.ReconcileResult
	decodeResult(t, result, &res)
	assert.Equal(t, []string{"gallery"}, res.Activated)
	assert.Equal(t, []string{"search", "gallery"}, res.Active)
}

func TestFeatureSerializeTool(t *testing.T) {
	s := newTestServer(t)
	controller := &fakeController{status: api.ControllerStatus{ActiveFeatures: []string{"search"}}}
	api.RegisterController(controller)

	result, err := s.handleFeatureSerialize(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var payload struct {
		Serialized bool     `json:"serialized"`
		Active     []string `json:"active"`
	}
	decodeResult(t, result, &payload)
	assert.True(t, payload.Serialized)
	assert.Equal(t, []string{"search"}, payload.Active)
	assert.Equal(t, 1, controller.serializeCalls)
}

func TestSettingsGetTool(t *testing.T) {
	s := newTestServer(t)
	api.RegisterSettings(&fakeSettings{
		rules:    map[string]string{"search": "always"},
		groups:   []string{"core"},
		explicit: true,
	})

	result, err := s.handleSettingsGet(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var payload struct {
		Rules         map[string]string `json:"rules"`
		EnabledGroups []string          `json:"enabled_groups"`
	}
	decodeResult(t, result, &payload)
	assert.Equal(t, "always", payload.Rules["search"])
	assert.Equal(t, []string{"core"}, payload.EnabledGroups)
}

func TestSettingsGetToolNoSelection(t *testing.T) {
	s := newTestServer(t)
	api.RegisterSettings(&fakeSettings{rules: map[string]string{}})

	result, err := s.handleSettingsGet(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	var payload map[string]interface{}
	decodeResult(t, result, &payload)
	assert.Nil(t, payload["enabled_groups"])
}

func TestRuleSetTool(t *testing.T) {
	s := newTestServer(t)
	settings := &fakeSettings{}
	api.RegisterSettings(settings)

	result, err := s.handleRuleSet(context.Background(), toolRequest(map[string]interface{}{
		"feature": "search",
		"rule":    "never",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "search", settings.setFeature)
	assert.Equal(t, "never", settings.setRule)
}

func TestRuleSetToolRejectsInvalidRule(t *testing.T) {
	s := newTestServer(t)
	api.RegisterSettings(&fakeSettings{})

	result, err := s.handleRuleSet(context.Background(), toolRequest(map[string]interface{}{
		"feature": "search",
		"rule":    "sometimes",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid enablement rule")
}

func TestRuleClearTool(t *testing.T) {
	s := newTestServer(t)
	settings := &fakeSettings{}
	api.RegisterSettings(settings)

	result, err := s.handleRuleClear(context.Background(), toolRequest(map[string]interface{}{
		"feature": "search",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, []string{"search"}, settings.cleared)
}

func TestGroupsSetTool(t *testing.T) {
	s := newTestServer(t)
	settings := &fakeSettings{}
	api.RegisterSettings(settings)

	result, err := s.handleGroupsSet(context.Background(), toolRequest(map[string]interface{}{
		"groups": []interface{}{"core", "extras"},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, []string{"core", "extras"}, settings.setGroups)
}

func TestGroupsSetToolEmptySelection(t *testing.T) {
	s := newTestServer(t)
	settings := &fakeSettings{}
	api.RegisterSettings(settings)

	result, err := s.handleGroupsSet(context.Background(), toolRequest(map[string]interface{}{
		"groups": []interface{}{},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.True(t, settings.setGroupsCalled)
	assert.NotNil(t, settings.setGroups, "empty array keeps an explicit selection")
	assert.Empty(t, settings.setGroups)
}

func TestGroupsSetToolClearsSelection(t *testing.T) {
	s := newTestServer(t)
	settings := &fakeSettings{}
	api.RegisterSettings(settings)

	result, err := s.handleGroupsSet(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.True(t, settings.setGroupsCalled)
	assert.Nil(t, settings.setGroups)
}

func TestGroupsSetToolRejectsNonStringEntries(t *testing.T) {
	s := newTestServer(t)
	api.RegisterSettings(&fakeSettings{})

	result, err := s.handleGroupsSet(context.Background(), toolRequest(map[string]interface{}{
		"groups": []interface{}{"core", 42},
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestFeatureEventsTool(t *testing.T) {
	s := newTestServer(t)
	source := &fakeEventSource{events: []api.EventInfo{
		{ID: "1", Reason: "FeatureActivated", Type: "Normal", FeatureID: "search"},
	}}
	api.RegisterEventSource(source)

	result, err := s.handleFeatureEvents(context.Background(), toolRequest(map[string]interface{}{
		"feature": "search",
		"reason":  "FeatureActivated",
		"limit":   float64(10),
	}))
	require.NoError(t, err)

	var payload struct {
		Events []api.EventInfo `json:"events"`
		Total  int             `json:"total"`
	}
	decodeResult(t, result, &payload)
	assert.Equal(t, 1, payload.Total)
	assert.Equal(t, "search", source.lastFilter.FeatureID)
	assert.Equal(t, "FeatureActivated", source.lastFilter.Reason)
	assert.Equal(t, 10, source.lastFilter.Limit)
}

func TestFeatureEventsToolSinceDuration(t *testing.T) {
	s := newTestServer(t)
	source := &fakeEventSource{}
	api.RegisterEventSource(source)

	before := time.Now().Add(-time.Hour)
	result, err := s.handleFeatureEvents(context.Background(), toolRequest(map[string]interface{}{
		"since": "30m",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.True(t, source.lastFilter.Since.After(before))
}

func TestFeatureEventsToolRejectsBadSince(t *testing.T) {
	s := newTestServer(t)
	api.RegisterEventSource(&fakeEventSource{})

	result, err := s.handleFeatureEvents(context.Background(), toolRequest(map[string]interface{}{
		"since": "whenever",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestParseSince(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "duration", value: "1h"},
		{name: "rfc3339", value: "2025-06-01T12:00:00Z"},
		{name: "date", value: "2025-06-01"},
		{name: "garbage", value: "whenever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSince(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, got.IsZero())
		})
	}
}

func TestEndpointPathFollowsTransport(t *testing.T) {
	sse := NewServer(ServerConfig{Host: "localhost", Port: 8090, Transport: "sse"})
	assert.Equal(t, "http://localhost:8090/sse", sse.Endpoint())

	http := NewServer(ServerConfig{Host: "localhost", Port: 8090, Transport: "streamable-http"})
	assert.Equal(t, "http://localhost:8090/mcp", http.Endpoint())
}
