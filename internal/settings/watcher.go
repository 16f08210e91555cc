package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"featgate/pkg/logging"
)

// Watcher reloads the store when settings.yaml changes on disk. It watches
// the configuration directory rather than the file itself so that editor
// rename-and-replace writes keep being observed.
type Watcher struct {
	store            *Store
	configPath       string
	debounceInterval time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for <configPath>/settings.yaml. A zero
// debounce interval selects the 500ms default.
func NewWatcher(configPath string, store *Store, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = 500 * time.Millisecond
	}

	return &Watcher{
		store:            store,
		configPath:       configPath,
		debounceInterval: debounceInterval,
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching for settings changes. Starting an already running
// watcher does nothing.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	if err := os.MkdirAll(w.configPath, 0755); err != nil {
		w.Stop()
		return err
	}
	if err := watcher.Add(w.configPath); err != nil {
		w.Stop()
		return err
	}

	go w.processEvents(ctx)

	logging.Info("Settings", "Watching %s for settings changes", w.configPath)
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return

		case <-w.stopCh:
			w.cancelPending()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Settings", err, "Settings watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != settingsFileName {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logging.Debug("Settings", "Settings file %s: %s", event.Name, event.Op)
	w.scheduleReload()
}

// scheduleReload debounces bursts of filesystem events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceInterval, func() {
		// The timer can fire while Stop is tearing the watcher down; a
		// stopped watcher must not reload or notify subscribers. Holding
		// the mutex across the reload serializes the callback with Stop.
		w.mu.Lock()
		defer w.mu.Unlock()
		if !w.running {
			return
		}
		if err := w.store.Reload(); err != nil {
			logging.Warn("Settings", "Keeping previous settings, reload failed: %v", err)
		}
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			logging.Error("Settings", err, "Error closing settings watcher")
		}
		w.watcher = nil
	}

	logging.Info("Settings", "Stopped settings watcher")
	return nil
}
