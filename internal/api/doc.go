// Package api provides the central API layer that decouples featgate's
// packages from each other through handler interfaces and a registration
// mechanism.
//
// # Architecture
//
// The api package implements the API/Locator pattern as the strict boundary
// between all packages. Components never import each other directly; they
// interact through handler interfaces registered here:
//
//	catalog  ──RegisterCatalog──►  api  ◄──GetCatalog── control/cli
//	lifecycle ──RegisterController─►  api  ◄──GetController── control/cli
//	settings ──RegisterSettings──►  api  ◄──GetSettings── control/cli
//	events   ──RegisterEventSource►  api  ◄──GetEventSource── control/cli
//
// Each implementing package provides an adapter in its own api_adapter.go
// that maps the package's internal types onto the shared types defined here.
//
// # Thread Safety
//
// Handler registration and retrieval are protected by a mutex and safe for
// concurrent use. Registration normally happens once during bootstrap,
// before any consumer asks for a handler.
package api
