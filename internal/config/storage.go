package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"featgate/pkg/logging"
)

// Storage reads and writes runtime documents beneath the configuration
// directory. Each category maps to a subdirectory holding one YAML file per
// named document; the standalone host keeps persisted feature state in the
// "state" category.
type Storage struct {
	mu         sync.RWMutex
	configPath string
}

// NewStorage creates a Storage rooted at the default configuration
// directory.
func NewStorage() *Storage {
	return &Storage{}
}

// NewStorageWithPath creates a Storage rooted at a custom configuration
// directory.
func NewStorageWithPath(configPath string) *Storage {
	return &Storage{configPath: configPath}
}

func (s *Storage) root() string {
	if s.configPath != "" {
		return s.configPath
	}
	return GetDefaultConfigPathOrPanic()
}

func (s *Storage) documentPath(category, name string) string {
	return filepath.Join(s.root(), category, sanitizeFilename(name)+".yaml")
}

// Save writes a document, creating the category directory as needed.
func (s *Storage) Save(category, name string, data []byte) error {
	if err := validateKey(category, name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.root(), category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := s.documentPath(category, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Debug("Storage", "Saved %s/%s to %s", category, name, path)
	return nil
}

// Load reads a document. A missing document yields an error satisfying
// errors.Is(err, os.ErrNotExist).
func (s *Storage) Load(category, name string) ([]byte, error) {
	if err := validateKey(category, name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.documentPath(category, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %s/%s not found: %w", category, name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// Delete removes a document. A missing document yields an error satisfying
// errors.Is(err, os.ErrNotExist).
func (s *Storage) Delete(category, name string) error {
	if err := validateKey(category, name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.documentPath(category, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document %s/%s not found: %w", category, name, os.ErrNotExist)
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	logging.Debug("Storage", "Deleted %s/%s", category, name)
	return nil
}

// List returns the sorted names of all documents in a category. A missing
// category directory is an empty list, not an error.
func (s *Storage) List(category string) ([]string, error) {
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.root(), category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", category, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}

	sort.Strings(names)
	return names, nil
}

func validateKey(category, name string) error {
	if category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// sanitizeFilename maps a document name onto a safe file basename.
func sanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '.', ' ':
			return '_'
		}
		return r
	}, name)

	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}
