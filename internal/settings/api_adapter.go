package settings

import (
	"featgate/internal/api"
)

// Adapter exposes a Store through the api.SettingsHandler interface.
type Adapter struct {
	store *Store
}

// NewAdapter creates an adapter for the given store.
func NewAdapter(store *Store) *Adapter {
	return &Adapter{store: store}
}

// Register registers this adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterSettings(a)
}

// RuleTable implements api.SettingsHandler.
func (a *Adapter) RuleTable() map[string]string {
	return a.store.RuleTable()
}

// EnabledGroups implements api.SettingsHandler.
func (a *Adapter) EnabledGroups() ([]string, bool) {
	return a.store.EnabledGroups()
}

// SetRule implements api.SettingsHandler.
func (a *Adapter) SetRule(featureID, rule string) error {
	return a.store.SetRule(featureID, rule)
}

// ClearRule implements api.SettingsHandler.
func (a *Adapter) ClearRule(featureID string) error {
	return a.store.ClearRule(featureID)
}

// SetEnabledGroups implements api.SettingsHandler.
func (a *Adapter) SetEnabledGroups(groups []string) error {
	return a.store.SetEnabledGroups(groups)
}
