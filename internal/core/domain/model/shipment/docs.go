// Package shipment provides the Shipment aggregate of the freight domain:
// a grouped transport leg moving a batch of packages together.
//
// The package includes:
//   - Shipment: the aggregate root owning per-leg member rows
//   - Status: the shipment lifecycle state machine
//     (PREPARING -> IN_TRANSIT -> ARRIVED | COMPLETED)
//   - Type: the kind of leg, which dictates the package statuses the
//     reconciler expects from members before the shipment may advance
//   - Member: one shipment-package join row with its own per-leg status,
//     distinct from the package's global status
//   - LogEntry: one immutable row of the shipment's append-only status log
//
// A shipment's own status is constrained by, but not derived from, its
// members: advancing the shipment is gated by the reconciler over the
// members' resolved package statuses.
package shipment
