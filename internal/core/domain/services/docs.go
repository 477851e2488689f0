// Package services provides domain services that coordinate business rules
// across the package and shipment aggregates.
//
// The package includes:
//   - ScanValidator: decides, per scanned package, whether a proposed bulk
//     status transition may apply, with distinct rejection reasons the UI
//     can surface individually
//   - ShipmentReconciler: gates shipment-level status advances on the
//     resolved statuses of all member packages
//
// Both services are pure: they operate on aggregates and resolved status
// maps handed to them and never touch persistence, which keeps the rules
// testable without a database.
package services
