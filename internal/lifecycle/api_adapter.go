package lifecycle

import (
	"featgate/internal/api"
)

// Adapter exposes a Controller through the api.ControllerHandler interface.
type Adapter struct {
	controller *Controller
}

// NewAdapter creates an adapter for the given controller.
func NewAdapter(controller *Controller) *Adapter {
	return &Adapter{controller: controller}
}

// Register registers this adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterController(a)
}

// Status implements api.ControllerHandler.
func (a *Adapter) Status() api.ControllerStatus {
	return api.ControllerStatus{
		State:              api.ControllerState(a.controller.State()),
		ActiveFeatures:     a.controller.Active(),
		PriorityCapability: a.controller.PriorityCapability(),
		LastReconcile:      a.controller.LastReconcile(),
	}
}

// Resolve implements api.ControllerHandler.
func (a *Adapter) Resolve() api.ResolutionInfo {
	enabled, decisions := a.controller.Resolution()

	info := api.ResolutionInfo{
		Enabled:   enabled,
		Decisions: make([]api.FeatureDecision, 0, len(decisions)),
	}
	for _, d := range decisions {
		info.Decisions = append(info.Decisions, api.FeatureDecision{
			ID:      d.Feature.ID,
			Rule:    string(d.Rule),
			Enabled: d.Enabled,
			Reason:  string(d.Reason),
		})
	}
	return info
}

// Reconcile implements api.ControllerHandler. Unlike the host-facing
// UpdateActiveFeatures it rejects wrong-state calls with an error, since
// API clients are outside the host integration contract.
func (a *Adapter) Reconcile() (*api.ReconcileResult, error) {
	res, err := a.controller.Reconcile()
	if err != nil {
		return nil, err
	}
	return &api.ReconcileResult{
		Activated:   res.Activated,
		Deactivated: res.Deactivated,
		Failed:      res.Failed,
		Active:      res.Active,
	}, nil
}

// Serialize implements api.ControllerHandler.
func (a *Adapter) Serialize() error {
	a.controller.Serialize()
	return nil
}
