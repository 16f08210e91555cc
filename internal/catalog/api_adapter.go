package catalog

import (
	"featgate/internal/api"
)

// Adapter exposes the catalog and its group index through the central API
// layer. It implements api.CatalogHandler.
type Adapter struct {
	catalog *Catalog
	index   *GroupIndex
}

// NewAdapter creates a catalog API adapter.
func NewAdapter(c *Catalog, idx *GroupIndex) *Adapter {
	return &Adapter{catalog: c, index: idx}
}

// Register registers this adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterCatalog(a)
}

// ListFeatures implements api.CatalogHandler.
func (a *Adapter) ListFeatures() []api.FeatureInfo {
	features := a.catalog.Features()
	infos := make([]api.FeatureInfo, 0, len(features))
	for _, f := range features {
		infos = append(infos, a.toInfo(f))
	}
	return infos
}

// GetFeature implements api.CatalogHandler.
func (a *Adapter) GetFeature(id string) (*api.FeatureInfo, error) {
	f, ok := a.catalog.Get(id)
	if !ok {
		return nil, api.NewFeatureNotFoundError(id)
	}
	info := a.toInfo(f)
	return &info, nil
}

// ListGroups implements api.CatalogHandler.
func (a *Adapter) ListGroups() []api.GroupInfo {
	names := a.index.Names()
	groups := make([]api.GroupInfo, 0, len(names))
	for _, name := range names {
		groups = append(groups, api.GroupInfo{
			Name:     name,
			Members:  a.index.Members(name),
			Required: name == RequiredGroupName,
		})
	}
	return groups
}

// GetGroup implements api.CatalogHandler.
func (a *Adapter) GetGroup(name string) (*api.GroupInfo, error) {
	if !a.index.Has(name) {
		return nil, api.NewGroupNotFoundError(name)
	}
	return &api.GroupInfo{
		Name:     name,
		Members:  a.index.Members(name),
		Required: name == RequiredGroupName,
	}, nil
}

func (a *Adapter) toInfo(f Feature) api.FeatureInfo {
	defaultRule := api.RuleDefault
	if IsSampleID(f.ID) {
		defaultRule = api.RuleNever
	}
	return api.FeatureInfo{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Provides:     f.Provides,
		Consumes:     f.Consumes,
		Experimental: f.Experimental,
		DefaultRule:  defaultRule,
		Groups:       a.index.GroupsOf(f.ID),
	}
}
