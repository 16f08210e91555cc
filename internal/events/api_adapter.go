package events

import (
	"sort"

	"featgate/internal/api"
)

// Adapter exposes the bus history through the central API layer.
// It implements api.EventSourceHandler.
type Adapter struct {
	bus *Bus
}

// NewAdapter creates an event source adapter backed by the given bus.
func NewAdapter(bus *Bus) *Adapter {
	return &Adapter{bus: bus}
}

// Register registers this adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterEventSource(a)
}

// Events implements api.EventSourceHandler. Results are newest first.
func (a *Adapter) Events(filter api.EventFilter) []api.EventInfo {
	history := a.bus.History()

	var out []api.EventInfo
	for _, e := range history {
		if filter.FeatureID != "" && e.FeatureID != filter.FeatureID {
			continue
		}
		if filter.Reason != "" && string(e.Reason) != filter.Reason {
			continue
		}
		if filter.Type != "" && string(e.Type) != filter.Type {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		out = append(out, api.EventInfo{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Reason:    string(e.Reason),
			Type:      string(e.Type),
			FeatureID: e.FeatureID,
			Message:   e.Message,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}
