// Package parcel provides the Package aggregate of the freight domain:
// a single physical parcel tracked from overseas intake to last-mile
// delivery.
//
// The package includes:
//   - Package: the aggregate root carrying the denormalized status cache
//     and the archived flag
//   - Status: the package lifecycle state machine with an explicit
//     transition graph
//   - LogEntry: one immutable row of the append-only status log
//
// Key business rules:
//   - The status log is the source of truth; Package.Status is a cache
//     written only together with a log append
//   - Status moves along forward edges of the transition graph; MISSING is
//     reachable from any non-terminal status and is a dead end
//   - Packages are never deleted, only archived once they reach a terminal
//     status
package parcel
