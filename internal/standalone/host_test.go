package standalone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"featgate/internal/api"
	"featgate/internal/catalog"
	"featgate/internal/config"
	"featgate/internal/settings"
)

type hostFixture struct {
	host  *Host
	store *settings.Store
	dir   string
}

func newFixture(t *testing.T, featureIDs ...string) *hostFixture {
	t.Helper()

	features := make([]catalog.Feature, 0, len(featureIDs))
	for _, id := range featureIDs {
		features = append(features, catalog.Feature{ID: id, Name: id})
	}
	cat, err := catalog.NewCatalog(features)
	require.NoError(t, err)

	dir := t.TempDir()
	store := settings.NewStore(dir)
	require.NoError(t, store.Load())

	return &hostFixture{
		host:  NewHost(cat, store, config.NewStorageWithPath(dir)),
		store: store,
		dir:   dir,
	}
}

func (f *hostFixture) statePath(featureID string) string {
	return filepath.Join(f.dir, stateCategory, featureID+".yaml")
}

func (f *hostFixture) readState(t *testing.T, featureID string) featureState {
	t.Helper()
	data, err := os.ReadFile(f.statePath(featureID))
	require.NoError(t, err)
	var st featureState
	require.NoError(t, yaml.Unmarshal(data, &st))
	return st
}

func TestHostTransitions(t *testing.T) {
	f := newFixture(t, "b", "a")

	require.NoError(t, f.host.RequestLoad("a"))
	require.NoError(t, f.host.RequestLoad("b"))
	assert.Equal(t, []string{"a", "b"}, f.host.Loaded())
	assert.False(t, f.host.IsActive("a"))

	require.NoError(t, f.host.RequestActivate("a"))
	assert.True(t, f.host.IsActive("a"))
	assert.Equal(t, []string{"a"}, f.host.ActiveFeatures())

	require.NoError(t, f.host.RequestDeactivate("a", true))
	assert.False(t, f.host.IsActive("a"))
	assert.Empty(t, f.host.ActiveFeatures())
}

func TestHostRejectsUnknownFeatures(t *testing.T) {
	f := newFixture(t, "a")

	assert.True(t, api.IsNotFound(f.host.RequestLoad("ghost")))
	assert.True(t, api.IsNotFound(f.host.RequestActivate("ghost")))
	assert.True(t, api.IsNotFound(f.host.RequestDeactivate("ghost", true)))
	assert.True(t, api.IsNotFound(f.host.RequestSerialize("ghost")))
}

func TestHostActivateImpliesLoad(t *testing.T) {
	f := newFixture(t, "a")

	require.NoError(t, f.host.RequestActivate("a"))
	assert.Equal(t, []string{"a"}, f.host.Loaded())
}

func TestHostSuppressedPersistence(t *testing.T) {
	f := newFixture(t, "a")
	require.NoError(t, f.host.RequestActivate("a"))

	require.NoError(t, f.host.RequestDeactivate("a", true))
	_, err := os.Stat(f.statePath("a"))
	assert.True(t, os.IsNotExist(err), "suppressed deactivation must not write state")

	require.NoError(t, f.host.RequestActivate("a"))
	require.NoError(t, f.host.RequestDeactivate("a", false))
	st := f.readState(t, "a")
	assert.False(t, st.Active)
	assert.Equal(t, 2, st.Activations)
}

func TestHostSerializeWritesState(t *testing.T) {
	f := newFixture(t, "a")
	require.NoError(t, f.host.RequestActivate("a"))
	require.NoError(t, f.host.RequestSerialize("a"))

	st := f.readState(t, "a")
	assert.Equal(t, "a", st.FeatureID)
	assert.True(t, st.Active)
	assert.Equal(t, 1, st.Activations)
	assert.False(t, st.LastActive.IsZero())
}

func TestHostRestoresPersistedState(t *testing.T) {
	f := newFixture(t, "a")
	require.NoError(t, f.host.RequestActivate("a"))
	require.NoError(t, f.host.RequestSerialize("a"))

	// A fresh host over the same directory continues the counters.
	g := newFixture(t, "a")
	g.dir = f.dir
	g.host = NewHost(g.host.catalog, g.store, config.NewStorageWithPath(f.dir))

	require.NoError(t, g.host.RequestActivate("a"))
	require.NoError(t, g.host.RequestSerialize("a"))

	st := g.readState(t, "a")
	assert.Equal(t, 2, st.Activations)
}

func TestHostDropsCorruptState(t *testing.T) {
	f := newFixture(t, "a")
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, stateCategory), 0755))
	require.NoError(t, os.WriteFile(f.statePath("a"), []byte("{broken"), 0644))

	require.NoError(t, f.host.RequestActivate("a"))
	require.NoError(t, f.host.RequestSerialize("a"))

	st := f.readState(t, "a")
	assert.Equal(t, 1, st.Activations, "corrupt state starts over")
}

func TestHostOwnerLoadedFiresOnceOnMarkReady(t *testing.T) {
	f := newFixture(t, "a")

	fired := 0
	_, err := f.host.OnOwnerLoaded(func() { fired++ })
	require.NoError(t, err)
	assert.Equal(t, 0, fired, "must not fire before MarkReady")

	f.host.MarkReady()
	assert.Equal(t, 1, fired)

	f.host.MarkReady()
	assert.Equal(t, 1, fired, "MarkReady is one-shot")
}

func TestHostOwnerLoadedAfterReadyFiresImmediately(t *testing.T) {
	f := newFixture(t, "a")
	f.host.MarkReady()

	fired := 0
	_, err := f.host.OnOwnerLoaded(func() { fired++ })
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}

func TestHostOwnerLoadedReleasedBeforeReady(t *testing.T) {
	f := newFixture(t, "a")

	fired := 0
	sub, err := f.host.OnOwnerLoaded(func() { fired++ })
	require.NoError(t, err)
	sub.Release()

	f.host.MarkReady()
	assert.Equal(t, 0, fired)
}

func TestHostBridgesSettings(t *testing.T) {
	f := newFixture(t, "a")

	_, ok := f.host.ConfigValue(api.SettingFeatureRules)
	assert.False(t, ok)

	notified := 0
	sub, err := f.host.OnConfigChanged(api.SettingFeatureRules, func() { notified++ })
	require.NoError(t, err)

	require.NoError(t, f.store.SetRule("a", "always"))
	assert.Equal(t, 1, notified)

	v, ok := f.host.ConfigValue(api.SettingFeatureRules)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"a": "always"}, v)

	sub.Release()
	require.NoError(t, f.store.SetRule("a", "never"))
	assert.Equal(t, 1, notified, "released subscriptions receive nothing")
}

func TestHostClearDeferredMainLoad(t *testing.T) {
	f := newFixture(t, "a")
	storage := config.NewStorageWithPath(f.dir)
	require.NoError(t, storage.Save(stateCategory, deferredLoadMarker, []byte("pending: true\n")))

	f.host.ClearDeferredMainLoad()
	_, err := os.Stat(filepath.Join(f.dir, stateCategory, deferredLoadMarker+".yaml"))
	assert.True(t, os.IsNotExist(err))

	// Clearing again with no marker present is fine.
	f.host.ClearDeferredMainLoad()
}

func TestHostSchemaRegistration(t *testing.T) {
	f := newFixture(t, "a")
	assert.Nil(t, f.host.Schema())

	schema := map[string]interface{}{"type": "object"}
	require.NoError(t, f.host.RegisterConfigSchema(schema))
	assert.Equal(t, schema, map[string]interface{}(f.host.Schema()))
}

func TestHostExperimentalLoad(t *testing.T) {
	f := newFixture(t, "x")

	require.NoError(t, f.host.LoadExperimental(catalog.Feature{ID: "x", Name: "x"}))
	assert.Equal(t, []string{"x"}, f.host.Loaded())

	require.NoError(t, f.host.RequestActivate("x"))
	require.NoError(t, f.host.RequestSerialize("x"))
	st := f.readState(t, "x")
	assert.True(t, st.Experimental)
}
