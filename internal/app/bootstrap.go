package app

import (
	"fmt"

	"featgate/internal/catalog"
	"featgate/internal/config"
	"featgate/internal/control"
	"featgate/internal/events"
	"featgate/internal/lifecycle"
	"featgate/internal/settings"
	"featgate/internal/standalone"
	"featgate/pkg/logging"
)

// eventHistorySize is how many lifecycle events the bus keeps for the
// feature_events tool.
const eventHistorySize = 512

// Application is a fully wired featgate process: catalog, settings,
// standalone host, lifecycle controller, event bus, settings watcher, and
// control endpoint.
type Application struct {
	Config Config

	Catalog    *catalog.Catalog
	Groups     *catalog.GroupIndex
	Store      *settings.Store
	Host       *standalone.Host
	Controller *lifecycle.Controller
	Bus        *events.Bus

	watcher *settings.Watcher
	control *control.Server
}

// NewApplication loads all configuration and wires the application together.
// Nothing is started yet; Run drives the lifecycle.
func NewApplication(cfg Config) (*Application, error) {
	logging.Info("Bootstrap", "Initializing featgate (config path: %s)", cfg.ConfigPath)

	if cfg.Featgate == nil {
		featgateCfg, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration from %s: %w", cfg.ConfigPath, err)
		}
		cfg.Featgate = &featgateCfg
	}

	cat, err := catalog.LoadCatalog(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load feature catalog")
		return nil, fmt.Errorf("failed to load feature catalog: %w", err)
	}

	groupDefs, err := catalog.LoadGroups(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load group definitions")
		return nil, fmt.Errorf("failed to load group definitions: %w", err)
	}
	groups := catalog.BuildGroupIndex(cat, groupDefs)

	store := settings.NewStore(cfg.ConfigPath)
	if err := store.Load(); err != nil {
		logging.Error("Bootstrap", err, "Failed to load enablement settings")
		return nil, fmt.Errorf("failed to load enablement settings: %w", err)
	}

	storage := config.NewStorageWithPath(cfg.ConfigPath)
	bus := events.NewBusWithHistory(eventHistorySize)
	host := standalone.NewHost(cat, store, storage)

	controller := lifecycle.NewController(lifecycle.Options{
		Host:               host,
		Experimental:       host,
		Catalog:            cat,
		Groups:             groups,
		PriorityCapability: cfg.Featgate.PriorityCapability,
		DevelopmentMode:    cfg.Featgate.DevelopmentMode,
		Events:             bus,
	})

	// Publish the runtime surfaces through the central API layer so the
	// control tools can reach them.
	catalog.NewAdapter(cat, groups).Register()
	lifecycle.NewAdapter(controller).Register()
	settings.NewAdapter(store).Register()
	events.NewAdapter(bus).Register()

	app := &Application{
		Config:     cfg,
		Catalog:    cat,
		Groups:     groups,
		Store:      store,
		Host:       host,
		Controller: controller,
		Bus:        bus,
		watcher:    settings.NewWatcher(cfg.ConfigPath, store, 0),
		control: control.NewServer(control.ServerConfig{
			Host:      cfg.Featgate.Control.Host,
			Port:      cfg.Featgate.Control.Port,
			Transport: cfg.Featgate.Control.Transport,
			Version:   cfg.Version,
		}),
	}

	logging.Info("Bootstrap", "Loaded %d features, %d groups", len(cat.Features()), len(groups.Names()))
	return app, nil
}

// ControlEndpoint returns the URL the control endpoint serves on.
func (a *Application) ControlEndpoint() string {
	return a.control.Endpoint()
}
