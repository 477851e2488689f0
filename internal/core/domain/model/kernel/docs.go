// Package kernel provides the shared value objects of the freight domain:
// identifiers for packages, shipments, and acting users.
//
// Identifiers are deliberately distinct types. A package travels end-to-end
// under a generated opaque tracking id, a shipment is a numbered transport
// leg, and an actor is the authenticated user attributed on status-log
// entries. Mixing them up is a compile error, not a runtime bug.
//
// All value objects follow the same rules:
//   - Zero values are invalid and fail Validate
//   - Construction happens through factory functions only
//   - Instances are immutable and safe for concurrent use
package kernel
