package api

// FeatureInfo describes a single catalog entry as exposed through the API.
// It combines the static manifest data with the derived default rule so
// consumers never need to re-implement the naming convention.
type FeatureInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Provides     []string `json:"provides,omitempty"`
	Consumes     []string `json:"consumes,omitempty"`
	Experimental bool     `json:"experimental,omitempty"`

	// DefaultRule is the rule applied when no explicit rule is configured
	// for this feature ("default", or "never" for sample features).
	DefaultRule string `json:"default_rule"`

	// Groups lists the names of all groups this feature is a member of.
	Groups []string `json:"groups,omitempty"`
}

// GroupInfo describes a named feature group and its resolved members.
// Members that did not match any catalog feature are already dropped.
type GroupInfo struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`

	// Required marks the distinguished group whose members are always
	// enabled regardless of configured rules.
	Required bool `json:"required,omitempty"`
}

// FeatureListResponse is the payload returned by feature listing operations.
type FeatureListResponse struct {
	Features []FeatureInfo `json:"features"`
}

// GroupListResponse is the payload returned by group listing operations.
type GroupListResponse struct {
	Groups []GroupInfo `json:"groups"`
}

// CatalogHandler provides read access to the immutable feature catalog
// and its group index.
type CatalogHandler interface {
	// ListFeatures returns all catalog entries in catalog order.
	ListFeatures() []FeatureInfo

	// GetFeature returns the catalog entry for the given feature ID.
	// Returns a NotFoundError if the catalog has no such feature.
	GetFeature(id string) (*FeatureInfo, error)

	// ListGroups returns all defined groups with their resolved members.
	ListGroups() []GroupInfo

	// GetGroup returns a single group by name.
	// Returns a NotFoundError if no group with that name is defined.
	GetGroup(name string) (*GroupInfo, error)
}
