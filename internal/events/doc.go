// Package events defines the feature lifecycle event model and an in-process
// bus that fans events out to subscribers and keeps a bounded history.
//
// The lifecycle controller publishes an event for every feature transition
// it performs (or fails to perform). Subscribers receive events on buffered
// channels; a slow subscriber never blocks the publisher, late events are
// dropped for that subscriber instead. The history ring buffer backs the
// event query surface exposed through the api layer.
package events
