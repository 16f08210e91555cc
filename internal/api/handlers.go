package api

import (
	"sync"

	"featgate/pkg/logging"
)

// Handler registry variables store the registered implementations.
// These variables are protected by handlerMutex for thread-safe access.
var (
	catalogHandler     CatalogHandler
	controllerHandler  ControllerHandler
	settingsHandler    SettingsHandler
	eventSourceHandler EventSourceHandler

	// handlerMutex protects all handler registry operations for thread-safe
	// registration and access.
	handlerMutex sync.RWMutex
)

// RegisterCatalog registers the catalog handler implementation.
// This handler provides read access to the immutable feature catalog and
// group index.
//
// The registration is thread-safe and should be called during system
// initialization. Only one catalog handler can be registered at a time;
// subsequent registrations replace the previous handler.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterCatalog(h CatalogHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	catalogHandler = h
}

// RegisterController registers the lifecycle controller handler
// implementation. This handler exposes reconciliation, resolution, and
// persistence operations against the running controller.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterController(h ControllerHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering controller handler: %v", h != nil)
	controllerHandler = h
}

// RegisterSettings registers the settings handler implementation.
// This handler reads and mutates the persisted enablement settings
// (rule table and enabled groups).
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterSettings(h SettingsHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	settingsHandler = h
}

// RegisterEventSource registers the event history handler implementation.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterEventSource(h EventSourceHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	eventSourceHandler = h
}

// GetCatalog returns the registered catalog handler, or nil if none has
// been registered yet. Callers must handle the nil case.
func GetCatalog() CatalogHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return catalogHandler
}

// GetController returns the registered controller handler, or nil if none
// has been registered yet. Callers must handle the nil case.
func GetController() ControllerHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return controllerHandler
}

// GetSettings returns the registered settings handler, or nil if none has
// been registered yet. Callers must handle the nil case.
func GetSettings() SettingsHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return settingsHandler
}

// GetEventSource returns the registered event history handler, or nil if
// none has been registered yet. Callers must handle the nil case.
func GetEventSource() EventSourceHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return eventSourceHandler
}

// ResetHandlers clears all registered handlers. Intended for tests that
// need a clean registry between cases.
func ResetHandlers() {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	catalogHandler = nil
	controllerHandler = nil
	settingsHandler = nil
	eventSourceHandler = nil
}
