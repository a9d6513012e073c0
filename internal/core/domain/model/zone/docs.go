// Package zone carries read-only delivery zone configuration snapshots.
//
// Zones are owned by an external catalogue; this package only models the
// slice of configuration the delivery fee calculator consumes: the active
// flag, the fee definition (flat or distance-based), the minimum order
// amount, and the optional free-delivery threshold. Snapshots tolerate
// misconfigured upstream data so the calculator can surface a configuration
// bug as a distinct error rather than the snapshot failing to load.
package zone
