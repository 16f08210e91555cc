package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"featgate/internal/catalog"
	"featgate/internal/enablement"
	"featgate/internal/events"
	"featgate/pkg/logging"
)

// State is the controller's lifecycle state.
type State string

const (
	StateUnloaded    State = "unloaded"
	StateLoaded      State = "loaded"
	StateActivated   State = "activated"
	StateDeactivated State = "deactivated"
)

// EventSink receives lifecycle events. *events.Bus satisfies it. Sinks must
// not call back into the controller.
type EventSink interface {
	Publish(event events.Event)
}

// Options configures a Controller.
type Options struct {
	// Host performs the actual feature transitions. Required.
	Host Host

	// Experimental handles features flagged experimental during the
	// host-loaded pass. Optional; without one experimental features fall
	// back to Host.RequestLoad.
	Experimental ExperimentalLoader

	// Catalog is the fixed feature catalog. Required.
	Catalog *catalog.Catalog

	// Groups is the group index built against the catalog. Required.
	Groups *catalog.GroupIndex

	// PriorityCapability overrides the capability used for activation
	// ordering. Empty selects catalog.DefaultPriorityCapability.
	PriorityCapability string

	// DevelopmentMode adds capability annotations to the generated
	// configuration schema.
	DevelopmentMode bool

	// Events receives lifecycle events. Optional.
	Events EventSink
}

// Result summarizes one reconciliation pass.
type Result struct {
	Activated   []string
	Deactivated []string

	// Failed lists features whose host transition errored or panicked
	// during the pass. Failures never abort the pass.
	Failed []string

	// Active is the tracked active set after the pass, in activation order.
	Active []string
}

// Controller owns the record of active features and reconciles it against
// the configured enablement. All operations serialize on an internal mutex;
// see the package documentation for the lifecycle contract.
type Controller struct {
	mu sync.Mutex

	host         Host
	experimental ExperimentalLoader
	features     []catalog.Feature
	groups       *catalog.GroupIndex
	priorityCap  string
	devMode      bool
	events       EventSink

	state          State
	active         []string
	activeSet      map[string]bool
	settingsSubs   *CompositeSubscription
	ownerLoadedSub Subscription
	lastReconcile  time.Time
}

// NewController creates a controller in the Unloaded state. Missing
// required options are programming errors and panic.
func NewController(opts Options) *Controller {
	if opts.Host == nil {
		panic("lifecycle: Options.Host is required")
	}
	if opts.Catalog == nil {
		panic("lifecycle: Options.Catalog is required")
	}
	if opts.Groups == nil {
		panic("lifecycle: Options.Groups is required")
	}

	priority := opts.PriorityCapability
	if priority == "" {
		priority = catalog.DefaultPriorityCapability
	}

	return &Controller{
		host:         opts.Host,
		experimental: opts.Experimental,
		features:     opts.Catalog.Features(),
		groups:       opts.Groups,
		priorityCap:  priority,
		devMode:      opts.DevelopmentMode,
		events:       opts.Events,
		state:        StateUnloaded,
		activeSet:    make(map[string]bool),
	}
}

// Load registers the generated configuration schema and the one-shot
// owner-loaded callback with the host, then transitions to Loaded.
// No feature is touched yet.
func (c *Controller) Load() {
	c.mu.Lock()
	c.mustBe(StateUnloaded, "Load")

	if err := c.host.RegisterConfigSchema(GenerateSchema(c.features, c.devMode)); err != nil {
		logging.Error("Lifecycle", err, "Failed to register configuration schema")
	}
	c.state = StateLoaded
	c.mu.Unlock()

	// Registered after the state flip and outside the lock: a host whose
	// owner already finished loading invokes the callback synchronously.
	sub, err := c.host.OnOwnerLoaded(c.onOwnerLoaded)
	if err != nil {
		logging.Error("Lifecycle", err, "Failed to register owner-loaded callback")
	} else {
		c.mu.Lock()
		c.ownerLoadedSub = sub
		c.mu.Unlock()
	}

	logging.Debug("Lifecycle", "Controller loaded, catalog has %d features", len(c.features))
	c.publishAll([]events.Event{{
		Reason:  events.ReasonControllerLoaded,
		Message: fmt.Sprintf("controller loaded, catalog has %d features", len(c.features)),
	}})
}

// Activate subscribes to the enablement settings, runs the first
// reconciliation, clears the host's deferred-load marker, and transitions
// to Activated.
func (c *Controller) Activate() {
	c.mu.Lock()
	c.mustBe(StateLoaded, "Activate")

	subs := NewComposite()
	for _, key := range []string{SettingFeatureRules, SettingEnabledGroups} {
		sub, err := c.host.OnConfigChanged(key, c.onSettingsChanged)
		if err != nil {
			logging.Error("Lifecycle", err, "Failed to subscribe to setting %s", key)
			continue
		}
		subs.Add(sub)
	}
	c.settingsSubs = subs
	c.state = StateActivated

	_, evs := c.reconcileLocked()
	c.mu.Unlock()

	// One-time defensive hook, after the first reconciliation has run.
	c.host.ClearDeferredMainLoad()

	evs = append(evs, events.Event{
		Reason:  events.ReasonControllerActivated,
		Message: "controller activated",
	})
	c.publishAll(evs)
}

// UpdateActiveFeatures runs one reconciliation pass and returns what
// changed. It is idempotent: a second call with unchanged configuration
// does nothing. Calling it outside the Activated state panics.
func (c *Controller) UpdateActiveFeatures() Result {
	c.mu.Lock()
	c.mustBe(StateActivated, "UpdateActiveFeatures")
	res, evs := c.reconcileLocked()
	c.mu.Unlock()

	c.publishAll(evs)
	return res
}

// Reconcile is the non-panicking variant of UpdateActiveFeatures, used by
// API surfaces where wrong-state calls are routine client behavior rather
// than host integration bugs.
func (c *Controller) Reconcile() (Result, error) {
	c.mu.Lock()
	if c.state != StateActivated {
		state := c.state
		c.mu.Unlock()
		return Result{}, fmt.Errorf("controller is %s, reconciliation requires the activated state", state)
	}
	res, evs := c.reconcileLocked()
	c.mu.Unlock()

	c.publishAll(evs)
	return res, nil
}

// Deactivate deactivates every tracked feature, releases the settings
// subscriptions, and transitions to the terminal Deactivated state.
// The controller cannot be reused afterwards.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	c.mustBe(StateActivated, "Deactivate")

	var evs []events.Event
	for _, id := range c.active {
		id := id
		if err := c.guard("deactivation", id, func() error {
			return c.host.RequestDeactivate(id, true)
		}); err != nil {
			evs = append(evs, events.Event{
				Reason:    events.ReasonFeatureDeactivationFailed,
				Type:      events.EventTypeWarning,
				FeatureID: id,
				Message:   fmt.Sprintf("deactivation failed: %v", err),
			})
			continue
		}
		evs = append(evs, events.Event{
			Reason:    events.ReasonFeatureDeactivated,
			FeatureID: id,
			Message:   "feature deactivated",
		})
	}

	c.active = nil
	c.activeSet = make(map[string]bool)
	settingsSubs := c.settingsSubs
	ownerSub := c.ownerLoadedSub
	c.settingsSubs = nil
	c.ownerLoadedSub = nil
	c.state = StateDeactivated
	c.mu.Unlock()

	// Released outside the lock; both handles are idempotent.
	if settingsSubs != nil {
		settingsSubs.Release()
	}
	if ownerSub != nil {
		ownerSub.Release()
	}

	logging.Info("Lifecycle", "Controller deactivated")
	evs = append(evs, events.Event{
		Reason:  events.ReasonControllerDeactivated,
		Message: "controller deactivated",
	})
	c.publishAll(evs)
}

// Serialize requests persistence for every tracked feature the host still
// reports as active. It is independent of the controller state and safe to
// call repeatedly.
func (c *Controller) Serialize() {
	c.mu.Lock()
	var evs []events.Event
	for _, id := range c.active {
		if !c.host.IsActive(id) {
			logging.Debug("Lifecycle", "Skipping serialization of %s, host reports it inactive", id)
			continue
		}
		id := id
		if err := c.guard("serialization", id, func() error {
			return c.host.RequestSerialize(id)
		}); err != nil {
			evs = append(evs, events.Event{
				Reason:    events.ReasonFeatureSerializeFailed,
				Type:      events.EventTypeWarning,
				FeatureID: id,
				Message:   fmt.Sprintf("serialization failed: %v", err),
			})
			continue
		}
		evs = append(evs, events.Event{
			Reason:    events.ReasonFeatureSerialized,
			FeatureID: id,
			Message:   "feature state persisted",
		})
	}
	c.mu.Unlock()

	c.publishAll(evs)
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active returns the tracked active feature IDs in activation order.
func (c *Controller) Active() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.active...)
}

// LastReconcile returns the time of the most recent reconciliation pass,
// zero if none has run.
func (c *Controller) LastReconcile() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReconcile
}

// PriorityCapability returns the capability used for activation ordering.
func (c *Controller) PriorityCapability() string {
	return c.priorityCap
}

// Resolution computes the configured enablement outcome without touching
// any feature state: the activation-ordered enabled IDs plus one decision
// per catalog feature in catalog order.
func (c *Controller) Resolution() ([]string, []enablement.Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rules := enablement.ParseRuleTable(c.settingValue(SettingFeatureRules))
	selection := enablement.ParseGroupSelection(c.settingValue(SettingEnabledGroups))

	decisions := enablement.Explain(c.features, rules, selection, c.groups)
	ordered := catalog.Reorder(enablement.Resolve(c.features, rules, selection, c.groups), c.priorityCap)

	ids := make([]string, len(ordered))
	for i, f := range ordered {
		ids[i] = f.ID
	}
	return ids, decisions
}

// onOwnerLoaded issues load requests for every currently enabled feature in
// activation order. Experimental features are handed to the experimental
// loader in a second pass.
func (c *Controller) onOwnerLoaded() {
	c.mu.Lock()
	if c.state != StateLoaded && c.state != StateActivated {
		c.mu.Unlock()
		return
	}

	desired := c.desiredLocked()
	logging.Debug("Lifecycle", "Owner loaded, issuing load requests for %d features", len(desired))

	var evs []events.Event
	var experimental []catalog.Feature
	for _, f := range desired {
		if f.Experimental && c.experimental != nil {
			experimental = append(experimental, f)
			continue
		}
		id := f.ID
		if err := c.guard("load", id, func() error {
			return c.host.RequestLoad(id)
		}); err == nil {
			evs = append(evs, loadRequestedEvent(id))
		}
	}
	for _, f := range experimental {
		f := f
		if err := c.guard("experimental load", f.ID, func() error {
			return c.experimental.LoadExperimental(f)
		}); err == nil {
			evs = append(evs, loadRequestedEvent(f.ID))
		}
	}
	c.mu.Unlock()

	c.publishAll(evs)
}

// onSettingsChanged reconciles in response to a config-change signal.
// Signals arriving after deactivation are ignored.
func (c *Controller) onSettingsChanged() {
	c.mu.Lock()
	if c.state != StateActivated {
		c.mu.Unlock()
		return
	}
	logging.Debug("Lifecycle", "Enablement settings changed, reconciling")
	_, evs := c.reconcileLocked()
	c.mu.Unlock()

	c.publishAll(evs)
}

// reconcileLocked computes the desired feature set and converges the active
// set onto it. All activations complete before the first deactivation so
// capability consumers never observe a gap. The tracked record always
// converges to the desired set, even when individual transitions failed;
// failures surface through logs and warning events.
func (c *Controller) reconcileLocked() (Result, []events.Event) {
	desired := c.desiredLocked()

	desiredIDs := make([]string, len(desired))
	desiredSet := make(map[string]bool, len(desired))
	for i, f := range desired {
		desiredIDs[i] = f.ID
		desiredSet[f.ID] = true
	}

	var res Result
	var evs []events.Event

	for _, f := range desired {
		if c.activeSet[f.ID] {
			continue
		}
		id := f.ID
		if err := c.guard("activation", id, func() error {
			return c.host.RequestActivate(id)
		}); err != nil {
			res.Failed = append(res.Failed, id)
			evs = append(evs, events.Event{
				Reason:    events.ReasonFeatureActivationFailed,
				Type:      events.EventTypeWarning,
				FeatureID: id,
				Message:   fmt.Sprintf("activation failed: %v", err),
			})
			continue
		}
		res.Activated = append(res.Activated, id)
		evs = append(evs, events.Event{
			Reason:    events.ReasonFeatureActivated,
			FeatureID: id,
			Message:   "feature activated",
		})
	}

	for _, id := range c.active {
		if desiredSet[id] {
			continue
		}
		id := id
		if err := c.guard("deactivation", id, func() error {
			return c.host.RequestDeactivate(id, true)
		}); err != nil {
			res.Failed = append(res.Failed, id)
			evs = append(evs, events.Event{
				Reason:    events.ReasonFeatureDeactivationFailed,
				Type:      events.EventTypeWarning,
				FeatureID: id,
				Message:   fmt.Sprintf("deactivation failed: %v", err),
			})
			continue
		}
		res.Deactivated = append(res.Deactivated, id)
		evs = append(evs, events.Event{
			Reason:    events.ReasonFeatureDeactivated,
			FeatureID: id,
			Message:   "feature deactivated",
		})
	}

	c.active = desiredIDs
	c.activeSet = desiredSet
	c.lastReconcile = time.Now()
	res.Active = append([]string(nil), desiredIDs...)

	if len(res.Activated)+len(res.Deactivated)+len(res.Failed) > 0 {
		logging.Info("Lifecycle", "Reconciled features: %d activated, %d deactivated, %d failed, %d active",
			len(res.Activated), len(res.Deactivated), len(res.Failed), len(res.Active))
		evs = append(evs, events.Event{
			Reason: events.ReasonReconcileCompleted,
			Message: fmt.Sprintf("%d activated, %d deactivated, %d failed",
				len(res.Activated), len(res.Deactivated), len(res.Failed)),
		})
	} else {
		logging.Debug("Lifecycle", "Reconciliation pass made no changes (%d active)", len(res.Active))
	}

	return res, evs
}

// desiredLocked resolves the configured enablement and applies the
// activation ordering.
func (c *Controller) desiredLocked() []catalog.Feature {
	rules := enablement.ParseRuleTable(c.settingValue(SettingFeatureRules))
	selection := enablement.ParseGroupSelection(c.settingValue(SettingEnabledGroups))
	enabled := enablement.Resolve(c.features, rules, selection, c.groups)
	return catalog.Reorder(enabled, c.priorityCap)
}

func (c *Controller) settingValue(key string) interface{} {
	v, ok := c.host.ConfigValue(key)
	if !ok {
		return nil
	}
	return v
}

// guard runs one per-feature host call, converting errors and panics into
// log entries so a single feature cannot abort the surrounding pass.
func (c *Controller) guard(op, featureID string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			logging.Error("Lifecycle", err, "Feature %s panicked during %s", featureID, op)
		}
	}()
	if err = fn(); err != nil {
		logging.Error("Lifecycle", err, "Feature %s failed during %s", featureID, op)
	}
	return err
}

// mustBe panics when the controller is not in the expected state. Lifecycle
// operations arriving out of order are programming errors in the host
// integration, not runtime conditions to tolerate.
func (c *Controller) mustBe(expected State, op string) {
	if c.state != expected {
		panic(fmt.Sprintf("lifecycle: %s called in state %q, requires %q", op, c.state, expected))
	}
}

func (c *Controller) publishAll(evs []events.Event) {
	if c.events == nil {
		return
	}
	for _, e := range evs {
		c.events.Publish(e)
	}
}

func loadRequestedEvent(featureID string) events.Event {
	return events.Event{
		Reason:    events.ReasonFeatureLoadRequested,
		FeatureID: featureID,
		Message:   "load requested",
	}
}
