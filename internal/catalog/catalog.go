package catalog

import "fmt"

// Catalog is the fixed, ordered list of features known to the application.
// It is immutable after construction.
type Catalog struct {
	features []Feature
	byID     map[string]int
}

// NewCatalog builds a catalog from the given features, preserving their
// order. It fails if any feature is structurally invalid or if two features
// share an ID.
func NewCatalog(features []Feature) (*Catalog, error) {
	byID := make(map[string]int, len(features))
	list := make([]Feature, len(features))
	copy(list, features)

	for i, f := range list {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("invalid feature at position %d: %w", i, err)
		}
		if prev, exists := byID[f.ID]; exists {
			return nil, fmt.Errorf("duplicate feature id %s (positions %d and %d)", f.ID, prev, i)
		}
		byID[f.ID] = i
	}

	return &Catalog{features: list, byID: byID}, nil
}

// Features returns all catalog entries in catalog order. The returned slice
// is a copy; the Feature values themselves are shared and must be treated
// as read-only.
func (c *Catalog) Features() []Feature {
	out := make([]Feature, len(c.features))
	copy(out, c.features)
	return out
}

// Get returns the feature with the given ID.
func (c *Catalog) Get(id string) (Feature, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Feature{}, false
	}
	return c.features[i], true
}

// Has reports whether a feature with the given ID exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.features)
}

// IDs returns all feature IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.features))
	for i, f := range c.features {
		ids[i] = f.ID
	}
	return ids
}
