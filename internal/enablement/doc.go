// Package enablement decides which catalog features should be enabled,
// given the configured rule table and group selection.
//
// Resolution is a pure function: the same catalog, rules, and selection
// always produce the same feature set, and resolving never touches feature
// state or performs I/O. The lifecycle controller calls it on every
// reconciliation; the CLI and control surface call it to explain the current
// configuration without side effects.
//
// # Precedence
//
// For every feature, exactly one clause decides the outcome, checked in
// this order:
//
//  1. membership in the required group enables the feature unconditionally,
//     even over an explicit "never" rule
//  2. an "always" rule enables it regardless of group selection
//  3. a "never" rule disables it
//  4. the "default" rule enables it iff the feature is eligible through the
//     group selection (an unset selection makes every feature eligible)
//
// Features without a configured rule fall back to their default rule, which
// is "never" for sample features and "default" for everything else.
package enablement
