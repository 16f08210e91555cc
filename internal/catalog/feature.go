package catalog

import (
	"fmt"
	"strings"
)

// Feature describes one optional subsystem of the host application.
// A Feature value is immutable once the catalog is built; callers must not
// modify the slices it carries.
type Feature struct {
	// ID uniquely identifies the feature within the catalog. It is stable
	// across releases and is the key used in rule tables, group definitions,
	// and generated configuration.
	ID string `yaml:"id,omitempty" json:"id"`

	// Name is the human-readable display name.
	Name string `yaml:"name" json:"name"`

	// Description explains what the feature does. Used verbatim in the
	// generated configuration schema.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Provides lists the capability names this feature offers to others.
	Provides []string `yaml:"provides,omitempty" json:"provides,omitempty"`

	// Consumes lists the capability names this feature depends on.
	Consumes []string `yaml:"consumes,omitempty" json:"consumes,omitempty"`

	// ConfigSchema is the feature's own configuration schema, merged into
	// the generated schema under the feature ID. Optional.
	ConfigSchema map[string]interface{} `yaml:"configSchema,omitempty" json:"configSchema,omitempty"`

	// Experimental routes the feature through the experimental loading
	// path instead of the regular load request.
	Experimental bool `yaml:"experimental,omitempty" json:"experimental,omitempty"`
}

// Validate checks the structural validity of a single feature entry.
func (f Feature) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("feature has empty id")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("feature %s has empty name", f.ID)
	}
	return nil
}

// ProvidesCapability reports whether the feature provides the named
// capability.
func (f Feature) ProvidesCapability(capability string) bool {
	for _, c := range f.Provides {
		if c == capability {
			return true
		}
	}
	return false
}

// samplePrefixes are the ID shapes reserved for sample features. Sample
// features ship with the application for demonstration purposes and default
// to never being enabled.
var samplePrefixes = []string{"sample-", "sample."}

// IsSampleID reports whether a feature ID follows the reserved sample
// naming convention.
func IsSampleID(id string) bool {
	if id == "sample" {
		return true
	}
	for _, p := range samplePrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}
