package catalog

import (
	"sort"

	"featgate/pkg/logging"
)

// RequiredGroupName is the distinguished group whose members are always
// included in the resolved feature set, overriding any configured rule.
const RequiredGroupName = "required"

// GroupIndex holds named feature groups resolved against a catalog.
// Group members that name no catalog feature are dropped at build time, so
// every ID found in the index is guaranteed to exist in the catalog.
// A GroupIndex is immutable after construction.
type GroupIndex struct {
	members map[string][]string
	lookup  map[string]map[string]bool
}

// BuildGroupIndex resolves raw group definitions against the catalog.
// Unknown member names are skipped; a group whose members all turn out to be
// unknown remains defined but empty. Duplicate members keep their first
// occurrence.
func BuildGroupIndex(c *Catalog, defs map[string][]string) *GroupIndex {
	idx := &GroupIndex{
		members: make(map[string][]string, len(defs)),
		lookup:  make(map[string]map[string]bool, len(defs)),
	}

	for name, raw := range defs {
		seen := make(map[string]bool, len(raw))
		members := make([]string, 0, len(raw))
		for _, id := range raw {
			if !c.Has(id) {
				logging.Debug("Catalog", "Group %s references unknown feature %s, skipping", name, id)
				continue
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			members = append(members, id)
		}
		idx.members[name] = members
		idx.lookup[name] = seen
	}

	return idx
}

// Names returns all defined group names in lexical order.
func (g *GroupIndex) Names() []string {
	names := make([]string, 0, len(g.members))
	for name := range g.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a group with the given name is defined.
func (g *GroupIndex) Has(name string) bool {
	_, ok := g.members[name]
	return ok
}

// Members returns the resolved member IDs of a group in definition order.
// An undefined group yields nil.
func (g *GroupIndex) Members(name string) []string {
	members, ok := g.members[name]
	if !ok {
		return nil
	}
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Contains reports whether the feature is a member of the named group.
// Undefined groups contain nothing.
func (g *GroupIndex) Contains(name, featureID string) bool {
	return g.lookup[name][featureID]
}

// Required returns the members of the distinguished required group, empty
// if the group is not defined.
func (g *GroupIndex) Required() []string {
	return g.Members(RequiredGroupName)
}

// IsRequired reports whether the feature is a member of the required group.
func (g *GroupIndex) IsRequired(featureID string) bool {
	return g.Contains(RequiredGroupName, featureID)
}

// GroupsOf returns the names of all groups the feature belongs to, in
// lexical order.
func (g *GroupIndex) GroupsOf(featureID string) []string {
	var names []string
	for name, set := range g.lookup {
		if set[featureID] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
