package app

import (
	"os"
	"path/filepath"
	"testing"

	"featgate/internal/api"
	"featgate/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	featuresDir := filepath.Join(dir, "features")
	require.NoError(t, os.MkdirAll(featuresDir, 0755))

	manifests := map[string]string{
		"browser.yaml": "name: Browser\nprovides:\n  - sync-lookup\n",
		"mailer.yaml":  "name: Mailer\n",
		"crash.yaml":   "name: Crash Reporter\n",
	}
	for name, content := range manifests {
		require.NoError(t, os.WriteFile(filepath.Join(featuresDir, name), []byte(content), 0644))
	}

	groups := "required:\n  - crash\ncore:\n  - browser\n  - mailer\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.yaml"), []byte(groups), 0644))

	return dir
}

func TestNewApplication(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)

	dir := writeTestConfig(t)
	application, err := NewApplication(NewConfig(false, true, dir, "test"))
	require.NoError(t, err)

	assert.Equal(t, 3, application.Catalog.Len())
	assert.ElementsMatch(t, []string{"required", "core"}, application.Groups.Names())
	assert.Equal(t, lifecycle.StateUnloaded, application.Controller.State())

	// The API adapters are registered during assembly.
	assert.NotNil(t, api.GetCatalog())
	assert.NotNil(t, api.GetController())
	assert.NotNil(t, api.GetSettings())
	assert.NotNil(t, api.GetEventSource())
}

func TestNewApplicationEmptyConfigDir(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)

	// No features, no groups, no settings: valid, just empty.
	application, err := NewApplication(NewConfig(false, true, t.TempDir(), "test"))
	require.NoError(t, err)
	assert.Equal(t, 0, application.Catalog.Len())
}

func TestNewApplicationLifecycle(t *testing.T) {
	api.ResetHandlers()
	t.Cleanup(api.ResetHandlers)

	dir := writeTestConfig(t)
	application, err := NewApplication(NewConfig(false, true, dir, "test"))
	require.NoError(t, err)

	application.Controller.Load()
	application.Controller.Activate()
	application.Host.MarkReady()

	// No settings.yaml: every feature is group-eligible, crash is required,
	// all three default-rule features end up active.
	assert.ElementsMatch(t, []string{"browser", "mailer", "crash"}, application.Controller.Active())
	assert.ElementsMatch(t, []string{"browser", "mailer", "crash"}, application.Host.ActiveFeatures())

	application.Controller.Deactivate()
	assert.Empty(t, application.Controller.Active())
	assert.Empty(t, application.Host.ActiveFeatures())
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig(true, false, "/tmp/featgate-test", "1.2.3")
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Silent)
	assert.Equal(t, "/tmp/featgate-test", cfg.ConfigPath)
	assert.Equal(t, "1.2.3", cfg.Version)
}
