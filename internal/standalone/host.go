package standalone

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"featgate/internal/api"
	"featgate/internal/catalog"
	"featgate/internal/config"
	"featgate/internal/lifecycle"
	"featgate/internal/settings"
	"featgate/pkg/logging"
)

const (
	// stateCategory is the storage category for persisted feature state.
	stateCategory = "state"

	// deferredLoadMarker is the name of the legacy marker document cleared
	// once during controller activation. Older versions wrote it to defer
	// the main feature load to the next start.
	deferredLoadMarker = "deferred-main-load"
)

// featureState is the persisted per-feature state document.
type featureState struct {
	FeatureID    string    `yaml:"featureID"`
	Active       bool      `yaml:"active"`
	LastActive   time.Time `yaml:"lastActive,omitempty"`
	Activations  int       `yaml:"activations"`
	Experimental bool      `yaml:"experimental,omitempty"`
}

// Host is the standalone lifecycle host. It satisfies both lifecycle.Host
// and lifecycle.ExperimentalLoader.
type Host struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	store   *settings.Store
	storage *config.Storage

	loaded       map[string]bool
	active       map[string]bool
	experimental map[string]bool
	state        map[string]*featureState

	schema lifecycle.ConfigSchema

	ownerLoaded bool
	ownerFns    map[string]func()
}

// NewHost creates a host over the given catalog, settings store, and state
// storage.
func NewHost(cat *catalog.Catalog, store *settings.Store, storage *config.Storage) *Host {
	return &Host{
		catalog:      cat,
		store:        store,
		storage:      storage,
		loaded:       map[string]bool{},
		active:       map[string]bool{},
		experimental: map[string]bool{},
		state:        map[string]*featureState{},
		ownerFns:     map[string]func(){},
	}
}

// RequestLoad implements lifecycle.Host. Loading restores the feature's
// persisted state document when one exists.
func (h *Host) RequestLoad(featureID string) error {
	if !h.catalog.Has(featureID) {
		return api.NewFeatureNotFoundError(featureID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.loaded[featureID] = true
	h.restoreStateLocked(featureID)
	logging.Debug("Host", "Loaded feature %s", featureID)
	return nil
}

// LoadExperimental implements lifecycle.ExperimentalLoader.
func (h *Host) LoadExperimental(feature catalog.Feature) error {
	if !h.catalog.Has(feature.ID) {
		return api.NewFeatureNotFoundError(feature.ID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.loaded[feature.ID] = true
	h.experimental[feature.ID] = true
	h.restoreStateLocked(feature.ID)
	logging.Warn("Host", "Loaded experimental feature %s", feature.ID)
	return nil
}

// RequestActivate implements lifecycle.Host. Activating an unloaded
// feature loads it first; activation requests can arrive before the
// owner-loaded pass has run.
func (h *Host) RequestActivate(featureID string) error {
	if !h.catalog.Has(featureID) {
		return api.NewFeatureNotFoundError(featureID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.loaded[featureID] {
		h.loaded[featureID] = true
		h.restoreStateLocked(featureID)
	}

	h.active[featureID] = true
	st := h.stateLocked(featureID)
	st.Active = true
	st.LastActive = time.Now()
	st.Activations++
	st.Experimental = h.experimental[featureID]

	logging.Info("Host", "Activated feature %s", featureID)
	return nil
}

// RequestDeactivate implements lifecycle.Host.
func (h *Host) RequestDeactivate(featureID string, suppressPersist bool) error {
	if !h.catalog.Has(featureID) {
		return api.NewFeatureNotFoundError(featureID)
	}

	h.mu.Lock()
	h.active[featureID] = false
	st := h.stateLocked(featureID)
	st.Active = false
	h.mu.Unlock()

	logging.Info("Host", "Deactivated feature %s", featureID)
	if suppressPersist {
		return nil
	}
	return h.persistState(featureID)
}

// RequestSerialize implements lifecycle.Host.
func (h *Host) RequestSerialize(featureID string) error {
	if !h.catalog.Has(featureID) {
		return api.NewFeatureNotFoundError(featureID)
	}
	return h.persistState(featureID)
}

// IsActive implements lifecycle.Host.
func (h *Host) IsActive(featureID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active[featureID]
}

// ConfigValue implements lifecycle.Host by delegating to the settings
// store.
func (h *Host) ConfigValue(key string) (interface{}, bool) {
	return h.store.Value(key)
}

// OnConfigChanged implements lifecycle.Host by subscribing to the settings
// store.
func (h *Host) OnConfigChanged(key string, fn func()) (lifecycle.Subscription, error) {
	id := h.store.Subscribe(key, fn)
	return lifecycle.NewSubscription(func() {
		h.store.Unsubscribe(key, id)
	}), nil
}

// OnOwnerLoaded implements lifecycle.Host. If MarkReady already ran the
// callback is invoked synchronously, before OnOwnerLoaded returns.
func (h *Host) OnOwnerLoaded(fn func()) (lifecycle.Subscription, error) {
	h.mu.Lock()
	if h.ownerLoaded {
		h.mu.Unlock()
		fn()
		return lifecycle.NewSubscription(nil), nil
	}

	id := uuid.NewString()
	h.ownerFns[id] = fn
	h.mu.Unlock()

	return lifecycle.NewSubscription(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.ownerFns, id)
	}), nil
}

// MarkReady declares the host's own startup complete and fires the pending
// owner-loaded callbacks exactly once. Later OnOwnerLoaded registrations
// fire immediately.
func (h *Host) MarkReady() {
	h.mu.Lock()
	if h.ownerLoaded {
		h.mu.Unlock()
		return
	}
	h.ownerLoaded = true
	fns := make([]func(), 0, len(h.ownerFns))
	for _, fn := range h.ownerFns {
		fns = append(fns, fn)
	}
	h.ownerFns = map[string]func(){}
	h.mu.Unlock()

	logging.Info("Host", "Startup complete, firing %d owner-loaded callbacks", len(fns))
	for _, fn := range fns {
		fn()
	}
}

// RegisterConfigSchema implements lifecycle.Host.
func (h *Host) RegisterConfigSchema(schema lifecycle.ConfigSchema) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.schema = schema
	logging.Debug("Host", "Registered feature configuration schema")
	return nil
}

// Schema returns the registered feature configuration schema, nil before
// the controller has loaded.
func (h *Host) Schema() lifecycle.ConfigSchema {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.schema
}

// ClearDeferredMainLoad implements lifecycle.Host. The marker is a legacy
// artifact; nothing writes it anymore, so a missing document is the normal
// case.
func (h *Host) ClearDeferredMainLoad() {
	err := h.storage.Delete(stateCategory, deferredLoadMarker)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn("Host", "Failed to clear deferred-load marker: %v", err)
		return
	}
	if err == nil {
		logging.Info("Host", "Cleared deferred-load marker")
	}
}

// Loaded returns the sorted IDs of all loaded features.
func (h *Host) Loaded() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return sortedKeys(h.loaded)
}

// ActiveFeatures returns the sorted IDs of all active features.
func (h *Host) ActiveFeatures() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return sortedKeys(h.active)
}

func sortedKeys(set map[string]bool) []string {
	var ids []string
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// stateLocked returns the in-memory state record for a feature, creating
// it on first touch.
func (h *Host) stateLocked(featureID string) *featureState {
	st, ok := h.state[featureID]
	if !ok {
		st = &featureState{FeatureID: featureID}
		h.state[featureID] = st
	}
	return st
}

// restoreStateLocked loads the persisted state document for a feature, if
// any. A corrupt document is dropped with a warning.
func (h *Host) restoreStateLocked(featureID string) {
	if _, ok := h.state[featureID]; ok {
		return
	}

	data, err := h.storage.Load(stateCategory, featureID)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("Host", "Failed to read state for %s: %v", featureID, err)
		}
		return
	}

	var st featureState
	if err := yaml.Unmarshal(data, &st); err != nil {
		logging.Warn("Host", "Dropping corrupt state document for %s: %v", featureID, err)
		return
	}
	st.FeatureID = featureID
	h.state[featureID] = &st
	logging.Debug("Host", "Restored state for %s (%d previous activations)", featureID, st.Activations)
}

// persistState writes the feature's state document.
func (h *Host) persistState(featureID string) error {
	h.mu.Lock()
	st := *h.stateLocked(featureID)
	h.mu.Unlock()

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state for %s: %w", featureID, err)
	}
	if err := h.storage.Save(stateCategory, featureID, data); err != nil {
		return fmt.Errorf("failed to persist state for %s: %w", featureID, err)
	}

	logging.Debug("Host", "Persisted state for %s", featureID)
	return nil
}
