package catalog

// DefaultPriorityCapability is the capability whose providers are moved to
// the front of the activation order. Providers of synchronous lookups must
// be live before the features that query them, so they activate first.
const DefaultPriorityCapability = "lookup.sync"

// Reorder returns the activation order for the given features: providers of
// the priority capability first, everything else after, with the relative
// order inside each part preserved (a stable partition of the input).
//
// Reorder is pure: it never mutates its input and returns a new slice.
// An empty priority capability disables boosting and yields the input order.
func Reorder(features []Feature, priorityCapability string) []Feature {
	out := make([]Feature, 0, len(features))
	if priorityCapability != "" {
		for _, f := range features {
			if f.ProvidesCapability(priorityCapability) {
				out = append(out, f)
			}
		}
	}
	for _, f := range features {
		if priorityCapability != "" && f.ProvidesCapability(priorityCapability) {
			continue
		}
		out = append(out, f)
	}
	return out
}
