package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, store *Store) *Watcher {
	t.Helper()
	w := NewWatcher(dir, store, 25*time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	startWatcher(t, dir, s)

	writeSettings(t, dir, "features:\n  rules:\n    search: always\n")

	require.Eventually(t, func() bool {
		return s.RuleTable()["search"] == "always"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcherReloadsOnRemoval(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "features:\n  rules:\n    search: always\n")
	s := loadedStore(t, dir)
	startWatcher(t, dir, s)

	require.NoError(t, os.Remove(filepath.Join(dir, settingsFileName)))

	require.Eventually(t, func() bool {
		return len(s.RuleTable()) == 0
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	startWatcher(t, dir, s)

	for i := 0; i < 5; i++ {
		writeSettings(t, dir, "features:\n  rules:\n    search: never\n")
	}
	writeSettings(t, dir, "features:\n  rules:\n    search: always\n")

	require.Eventually(t, func() bool {
		return s.RuleTable()["search"] == "always"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	startWatcher(t, dir, s)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("features:\n  rules:\n    search: always\n"), 0644))

	// Give the debounce window time to elapse; nothing should change.
	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, s.RuleTable())
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	w := startWatcher(t, dir, s)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	// Changes after Stop are not picked up.
	writeSettings(t, dir, "features:\n  rules:\n    search: always\n")
	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, s.RuleTable())
}

func TestWatcherStopPreventsPendingReload(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	w := NewWatcher(dir, s, 100*time.Millisecond)
	require.NoError(t, w.Start(context.Background()))

	writeSettings(t, dir, "features:\n  rules:\n    search: always\n")

	// Wait until the debounce timer is armed, then stop inside the window.
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.timer != nil
	}, 3*time.Second, time.Millisecond)
	require.NoError(t, w.Stop())

	time.Sleep(250 * time.Millisecond)
	assert.Empty(t, s.RuleTable(), "a pending reload must not run after Stop")
}

func TestWatcherFiredTimerRespectsStop(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	writeSettings(t, dir, "features:\n  rules:\n    search: always\n")

	// Arm the timer, then hold the watcher lock so the fired callback
	// blocks on it while the watcher shuts down, the way Stop racing an
	// elapsed debounce does.
	w := NewWatcher(dir, s, time.Millisecond)
	w.running = true
	w.scheduleReload()
	w.mu.Lock()
	time.Sleep(20 * time.Millisecond)
	w.running = false
	w.timer = nil
	w.mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, s.RuleTable(), "a fired timer must not reload after shutdown")
}

func TestWatcherStartTwice(t *testing.T) {
	dir := t.TempDir()
	s := loadedStore(t, dir)
	w := startWatcher(t, dir, s)

	assert.NoError(t, w.Start(context.Background()), "double start is a no-op")
}
