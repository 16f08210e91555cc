package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"featgate/pkg/logging"
)

// serializeInterval is how often the active features' state is persisted
// while the process runs. Shutdown performs a final pass regardless.
const serializeInterval = 5 * time.Minute

// Run drives the application lifecycle until the context is cancelled.
// It transitions the controller through Load and Activate, marks the host
// ready so the ordered load pass fires, and starts the settings watcher and
// the control endpoint. On cancellation it persists feature state,
// deactivates the controller, and tears the collaborators down.
func (a *Application) Run(ctx context.Context) error {
	a.Controller.Load()
	a.Controller.Activate()

	// The host's own startup is complete once the controller is wired;
	// this fires the ordered load-request pass.
	a.Host.MarkReady()

	if err := a.watcher.Start(ctx); err != nil {
		logging.Error("App", err, "Failed to start settings watcher")
		return err
	}

	if err := a.control.Start(ctx); err != nil {
		logging.Error("App", err, "Failed to start control endpoint")
		a.watcher.Stop()
		return err
	}
	logging.Info("App", "Control endpoint available at %s", a.control.Endpoint())

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(serializeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return nil
			case <-ticker.C:
				a.Controller.Serialize()
			}
		}
	})

	g.Go(func() error {
		<-runCtx.Done()
		return nil
	})

	err := g.Wait()

	a.shutdown()
	return err
}

// shutdown persists state and tears the collaborators down in the reverse
// order of startup.
func (a *Application) shutdown() {
	logging.Info("App", "Shutting down")

	a.Controller.Serialize()
	a.Controller.Deactivate()

	if err := a.watcher.Stop(); err != nil {
		logging.Warn("App", "Failed to stop settings watcher: %v", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.control.Stop(stopCtx); err != nil {
		logging.Warn("App", "Failed to stop control endpoint: %v", err)
	}
}
