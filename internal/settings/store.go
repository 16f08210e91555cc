package settings

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"featgate/internal/api"
	"featgate/pkg/logging"
)

const settingsFileName = "settings.yaml"

// document is the on-disk shape of settings.yaml.
type document struct {
	Features featuresSection `yaml:"features"`
}

type featuresSection struct {
	// Rules maps feature IDs to rule strings. Values are stored verbatim;
	// consumers parse them leniently.
	Rules map[string]string `yaml:"rules,omitempty"`

	// EnabledGroups uses a pointer to distinguish an absent key (every
	// feature group-eligible) from a present but empty list (no groups
	// selected).
	EnabledGroups *[]string `yaml:"enabledGroups,omitempty"`
}

// Store holds the runtime enablement settings, persists them to
// settings.yaml, and notifies key-scoped subscribers about changes.
type Store struct {
	mu     sync.RWMutex
	path   string
	rules  map[string]string
	groups *[]string

	subscribers map[string]map[string]func()
}

// NewStore creates a store over <configPath>/settings.yaml. Call Load
// before first use.
func NewStore(configPath string) *Store {
	return &Store{
		path:        filepath.Join(configPath, settingsFileName),
		rules:       map[string]string{},
		subscribers: map[string]map[string]func(){},
	}
}

// Load reads settings.yaml. A missing file leaves the defaults in place;
// a malformed file is an error.
func (s *Store) Load() error {
	doc, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.applyLocked(doc)
	s.mu.Unlock()
	return nil
}

// Reload re-reads settings.yaml and notifies subscribers of every key whose
// value changed. On a read or parse error the current settings are kept and
// the error returned, so a half-written file never wipes the runtime state.
func (s *Store) Reload() error {
	doc, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.applyLocked(doc)
	s.mu.Unlock()

	if len(changed) > 0 {
		logging.Info("Settings", "Reloaded settings, changed: %v", changed)
		s.notify(changed...)
	}
	return nil
}

func (s *Store) read() (document, error) {
	var doc document

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Settings", "No settings.yaml found at %s, starting with defaults", s.path)
			return doc, nil
		}
		return doc, fmt.Errorf("error reading settings from %s: %w", s.path, err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("error loading settings from %s: %w", s.path, err)
	}
	return doc, nil
}

// applyLocked installs a freshly read document and reports which setting
// keys changed.
func (s *Store) applyLocked(doc document) []string {
	var changed []string

	newRules := doc.Features.Rules
	if newRules == nil {
		newRules = map[string]string{}
	}
	if !maps.Equal(s.rules, newRules) {
		s.rules = newRules
		changed = append(changed, api.SettingFeatureRules)
	}

	if !groupsEqual(s.groups, doc.Features.EnabledGroups) {
		s.groups = doc.Features.EnabledGroups
		changed = append(changed, api.SettingEnabledGroups)
	}

	return changed
}

func groupsEqual(a, b *[]string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return slices.Equal(*a, *b)
}

// Value returns the current value for a setting key, in the raw shape the
// controller's lenient parsers accept. The second return is false when the
// key is unset.
func (s *Store) Value(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch key {
	case api.SettingFeatureRules:
		if len(s.rules) == 0 {
			return nil, false
		}
		return maps.Clone(s.rules), true
	case api.SettingEnabledGroups:
		if s.groups == nil {
			return nil, false
		}
		return slices.Clone(*s.groups), true
	}
	return nil, false
}

// RuleTable returns a copy of the configured per-feature rules.
func (s *Store) RuleTable() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.rules)
}

// EnabledGroups returns the configured group selection. The second return
// is false when no selection is configured.
func (s *Store) EnabledGroups() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.groups == nil {
		return nil, false
	}
	return slices.Clone(*s.groups), true
}

// SetRule configures an explicit rule for a feature and persists the
// change. Rule values outside always/never/default are rejected.
func (s *Store) SetRule(featureID, rule string) error {
	if featureID == "" {
		return fmt.Errorf("feature ID cannot be empty")
	}
	if !api.ValidRule(rule) {
		return &api.InvalidRuleError{Value: rule}
	}

	s.mu.Lock()
	if s.rules[featureID] == rule {
		s.mu.Unlock()
		return nil
	}
	s.rules[featureID] = rule
	err := s.saveLocked()
	s.mu.Unlock()

	s.notify(api.SettingFeatureRules)
	return err
}

// ClearRule removes the explicit rule for a feature so its default rule
// applies again. Clearing an absent rule is a no-op.
func (s *Store) ClearRule(featureID string) error {
	s.mu.Lock()
	if _, ok := s.rules[featureID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.rules, featureID)
	err := s.saveLocked()
	s.mu.Unlock()

	s.notify(api.SettingFeatureRules)
	return err
}

// SetEnabledGroups replaces the group selection and persists the change.
// An empty, non-nil slice selects no groups; nil clears the selection so
// every feature counts as group-eligible again.
func (s *Store) SetEnabledGroups(groups []string) error {
	var next *[]string
	if groups != nil {
		copied := slices.Clone(groups)
		next = &copied
	}

	s.mu.Lock()
	if groupsEqual(s.groups, next) {
		s.mu.Unlock()
		return nil
	}
	s.groups = next
	err := s.saveLocked()
	s.mu.Unlock()

	s.notify(api.SettingEnabledGroups)
	return err
}

// saveLocked writes the current settings to disk. The in-memory state is
// authoritative; a write failure is reported but does not roll back.
func (s *Store) saveLocked() error {
	doc := document{}
	if len(s.rules) > 0 {
		doc.Features.Rules = s.rules
	}
	doc.Features.EnabledGroups = s.groups

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	logging.Debug("Settings", "Persisted settings to %s", s.path)
	return nil
}

// Subscribe registers a callback for changes to one setting key and
// returns the handle for Unsubscribe.
func (s *Store) Subscribe(key string, fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if s.subscribers[key] == nil {
		s.subscribers[key] = map[string]func(){}
	}
	s.subscribers[key][id] = fn
	return id
}

// Unsubscribe removes a previously registered callback. Unknown handles
// are ignored.
func (s *Store) Unsubscribe(key, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers[key], id)
}

// notify invokes the subscribers of the given keys serially, outside the
// store's lock.
func (s *Store) notify(keys ...string) {
	var fns []func()
	s.mu.RLock()
	for _, key := range keys {
		for _, fn := range s.subscribers[key] {
			fns = append(fns, fn)
		}
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
