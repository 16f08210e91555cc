package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"featgate/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	featuresSubdir = "features"
	groupsFileName = "groups.yaml"
)

// LoadCatalog reads all feature manifests from <configPath>/features and
// builds the catalog. Manifests are YAML files, one feature per file; the
// feature ID defaults to the file name without extension. Catalog order is
// the lexical file name order.
//
// Unreadable or structurally invalid manifests are skipped with a warning so
// a single broken file cannot take the whole catalog down. Duplicate IDs are
// a hard error.
func LoadCatalog(configPath string) (*Catalog, error) {
	dir := filepath.Join(configPath, featuresSubdir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Catalog", "No features directory at %s, catalog is empty", dir)
			return NewCatalog(nil)
		}
		return nil, fmt.Errorf("failed to read features directory %s: %w", dir, err)
	}

	var features []Feature
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logging.Warn("Catalog", "Failed to read feature manifest %s: %v", path, err)
			continue
		}

		var f Feature
		if err := yaml.Unmarshal(data, &f); err != nil {
			logging.Warn("Catalog", "Failed to parse feature manifest %s: %v", path, err)
			continue
		}
		if f.ID == "" {
			f.ID = strings.TrimSuffix(name, ext)
		}
		if err := f.Validate(); err != nil {
			logging.Warn("Catalog", "Invalid feature manifest %s: %v", path, err)
			continue
		}
		features = append(features, f)
	}

	c, err := NewCatalog(features)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog from %s: %w", dir, err)
	}
	logging.Info("Catalog", "Loaded %d features from %s", c.Len(), dir)
	return c, nil
}

// LoadGroups reads the group definitions from <configPath>/groups.yaml as a
// mapping of group name to member feature IDs. A missing file yields an
// empty definition set; member names are not checked here, that happens in
// BuildGroupIndex.
func LoadGroups(configPath string) (map[string][]string, error) {
	path := filepath.Join(configPath, groupsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Catalog", "No groups.yaml at %s, no groups defined", path)
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("failed to read groups file %s: %w", path, err)
	}

	defs := map[string][]string{}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse groups file %s: %w", path, err)
	}
	return defs, nil
}
