// Package catalog defines the immutable feature catalog: the fixed set of
// optional subsystems a host application knows how to load, their capability
// relationships, and the named groups used to select them.
//
// The catalog is constructed once at startup from YAML manifests and never
// changes afterwards. All enablement and lifecycle decisions elsewhere in
// featgate operate on the types defined here.
//
// # Components
//
//   - Feature and Catalog: the entries and the validated, ordered collection
//   - GroupIndex: named groups resolved against the catalog, including the
//     distinguished "required" group
//   - Reorder: the activation-order rule that boosts providers of the
//     priority capability
//   - Loader: reads feature manifests and group definitions from the
//     configuration directory
//
// # Ordering
//
// Catalog order is the lexical order of the manifest file names, which makes
// it stable across runs. Activation order is derived from catalog order by a
// stable partition, never by sorting, so relative order between features is
// always preserved.
package catalog
