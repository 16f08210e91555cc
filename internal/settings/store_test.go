package settings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featgate/internal/api"
)

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0644))
}

func loadedStore(t *testing.T, dir string) *Store {
	t.Helper()
	s := NewStore(dir)
	require.NoError(t, s.Load())
	return s
}

type notifyCounter struct {
	mu    sync.Mutex
	count int
}

func (n *notifyCounter) fn() func() {
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.count++
	}
}

func (n *notifyCounter) value() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := loadedStore(t, t.TempDir())

	assert.Empty(t, s.RuleTable())
	_, ok := s.EnabledGroups()
	assert.False(t, ok, "no selection configured")

	_, ok = s.Value(api.SettingFeatureRules)
	assert.False(t, ok)
	_, ok = s.Value(api.SettingEnabledGroups)
	assert.False(t, ok)
}

func TestStoreLoadFull(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, `
features:
  rules:
    search: always
    sample-gallery: never
  enabledGroups:
    - core
    - extras
`)
	s := loadedStore(t, dir)

	assert.Equal(t, map[string]string{"search": "always", "sample-gallery": "never"}, s.RuleTable())

	groups, ok := s.EnabledGroups()
	require.True(t, ok)
	assert.Equal(t, []string{"core", "extras"}, groups)
}

func TestStoreDistinguishesEmptyFromAbsentGroups(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "features:\n  enabledGroups: []\n")
	s := loadedStore(t, dir)

	groups, ok := s.EnabledGroups()
	require.True(t, ok, "an explicit empty list is a configured selection")
	assert.Empty(t, groups)

	v, ok := s.Value(api.SettingEnabledGroups)
	require.True(t, ok)
	assert.Equal(t, []string{}, v)
}

func TestStoreLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "features: [broken")

	s := NewStore(dir)
	assert.Error(t, s.Load())
}

func TestSetRulePersistsAndNotifies(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)

	counter := &notifyCounter{}
	s.Subscribe(api.SettingFeatureRules, counter.fn())

	require.NoError(t, s.SetRule("search", "always"))
	assert.Equal(t, 1, counter.value())

	// A fresh store sees the persisted value.
	reopened := loadedStore(t, dir)
	assert.Equal(t, "always", reopened.RuleTable()["search"])
}

func TestSetRuleRejectsInvalidValues(t *testing.T) {
	s := loadedStore(t, t.TempDir())

	err := s.SetRule("search", "sometimes")
	require.Error(t, err)
	assert.True(t, api.IsInvalidRule(err))

	assert.Error(t, s.SetRule("", "always"))
	assert.Empty(t, s.RuleTable())
}

func TestSetRuleUnchangedValueIsQuiet(t *testing.T) {
	s := loadedStore(t, t.TempDir())
	require.NoError(t, s.SetRule("search", "always"))

	counter := &notifyCounter{}
	s.Subscribe(api.SettingFeatureRules, counter.fn())

	require.NoError(t, s.SetRule("search", "always"))
	assert.Equal(t, 0, counter.value())
}

func TestClearRule(t *testing.T) {
	s := loadedStore(t, t.TempDir())
	require.NoError(t, s.SetRule("search", "never"))

	counter := &notifyCounter{}
	s.Subscribe(api.SettingFeatureRules, counter.fn())

	require.NoError(t, s.ClearRule("search"))
	assert.Empty(t, s.RuleTable())
	assert.Equal(t, 1, counter.value())

	require.NoError(t, s.ClearRule("search"), "clearing an absent rule is a no-op")
	assert.Equal(t, 1, counter.value())
}

func TestSetEnabledGroups(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)

	counter := &notifyCounter{}
	s.Subscribe(api.SettingEnabledGroups, counter.fn())

	require.NoError(t, s.SetEnabledGroups([]string{"core"}))
	groups, ok := s.EnabledGroups()
	require.True(t, ok)
	assert.Equal(t, []string{"core"}, groups)
	assert.Equal(t, 1, counter.value())

	// Explicit empty selection persists as a configured value.
	require.NoError(t, s.SetEnabledGroups([]string{}))
	reopened := loadedStore(t, dir)
	groups, ok = reopened.EnabledGroups()
	require.True(t, ok)
	assert.Empty(t, groups)

	// Nil clears the selection entirely.
	require.NoError(t, s.SetEnabledGroups(nil))
	_, ok = s.EnabledGroups()
	assert.False(t, ok)

	reopened = loadedStore(t, dir)
	_, ok = reopened.EnabledGroups()
	assert.False(t, ok)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := loadedStore(t, t.TempDir())

	counter := &notifyCounter{}
	id := s.Subscribe(api.SettingFeatureRules, counter.fn())

	require.NoError(t, s.SetRule("a", "always"))
	s.Unsubscribe(api.SettingFeatureRules, id)
	require.NoError(t, s.SetRule("b", "always"))

	assert.Equal(t, 1, counter.value())
}

func TestReloadNotifiesOnlyChangedKeys(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "features:\n  rules:\n    a: always\n")
	s := loadedStore(t, dir)

	ruleCounter := &notifyCounter{}
	groupCounter := &notifyCounter{}
	s.Subscribe(api.SettingFeatureRules, ruleCounter.fn())
	s.Subscribe(api.SettingEnabledGroups, groupCounter.fn())

	writeSettings(t, dir, "features:\n  rules:\n    a: never\n")
	require.NoError(t, s.Reload())
	assert.Equal(t, 1, ruleCounter.value())
	assert.Equal(t, 0, groupCounter.value())

	// Identical content changes nothing.
	require.NoError(t, s.Reload())
	assert.Equal(t, 1, ruleCounter.value())

	writeSettings(t, dir, "features:\n  rules:\n    a: never\n  enabledGroups: [core]\n")
	require.NoError(t, s.Reload())
	assert.Equal(t, 1, ruleCounter.value())
	assert.Equal(t, 1, groupCounter.value())
}

func TestReloadKeepsStateOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "features:\n  rules:\n    a: always\n")
	s := loadedStore(t, dir)

	writeSettings(t, dir, "features: {broken")
	assert.Error(t, s.Reload())
	assert.Equal(t, "always", s.RuleTable()["a"], "previous settings survive a bad write")
}

func TestReloadFileRemovalRestoresDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "features:\n  rules:\n    a: always\n  enabledGroups: [core]\n")
	s := loadedStore(t, dir)

	require.NoError(t, os.Remove(filepath.Join(dir, settingsFileName)))
	require.NoError(t, s.Reload())

	assert.Empty(t, s.RuleTable())
	_, ok := s.EnabledGroups()
	assert.False(t, ok)
}

func TestValueReturnsCopies(t *testing.T) {
	s := loadedStore(t, t.TempDir())
	require.NoError(t, s.SetRule("a", "always"))

	v, ok := s.Value(api.SettingFeatureRules)
	require.True(t, ok)
	rules := v.(map[string]string)
	rules["a"] = "never"

	assert.Equal(t, "always", s.RuleTable()["a"], "mutating a returned value must not affect the store")
}
