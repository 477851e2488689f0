package services

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
)

// ErrResolvedStatusMissing is returned when a member package has no resolved
// status in the map handed to the validator. Every tracked package gets a log
// entry at intake, so a missing resolution means the caller skipped the
// resolver or the log invariant is broken.
var ErrResolvedStatusMissing = errors.New("member package has no resolved status")

// RejectionReason classifies why a scanned package was not accepted.
// The three reasons are part of the scan contract: the UI surfaces each
// one differently, so they must stay distinguishable.
type RejectionReason int

const (
	// RejectionUnknown represents an invalid or undefined reason.
	RejectionUnknown RejectionReason = iota

	// Unrecognized means the package is not a member of the shipment being
	// scanned. A package id that belongs to a different shipment is
	// unrecognized here, not merely in a different status.
	Unrecognized

	// AlreadyScanned means the package was already accepted earlier in this
	// scanning session. Idempotent no-op feedback, not a failure.
	AlreadyScanned

	// AlreadyUpdated means the package's persisted status no longer matches
	// the status this scan expects, typically because a concurrent operator
	// already applied the transition.
	AlreadyUpdated
)

// String returns the wire representation, e.g. "ALREADY_SCANNED".
func (r RejectionReason) String() string {
	switch r {
	case Unrecognized:
		return "UNRECOGNIZED"
	case AlreadyScanned:
		return "ALREADY_SCANNED"
	case AlreadyUpdated:
		return "ALREADY_UPDATED"
	default:
		return "UNKNOWN"
	}
}

// Rejection is one scanned package the validator refused, with the reason
// the caller must surface.
type Rejection struct {
	PackageID kernel.PackageID
	Reason    RejectionReason
}

// ScanResult partitions a scanned batch into packages the transition may
// apply to and packages that were rejected.
type ScanResult struct {
	Accepted []kernel.PackageID
	Rejected []Rejection
}

// ScanValidator decides whether a proposed bulk status transition may apply
// to each package in a scanned batch.
//
// Verdict precedence per package: membership first, then session
// duplicates, then persisted status. A package failing an earlier check is
// rejected with that reason and later checks are not consulted.
//
// The validator deliberately holds no state: the session's already-scanned
// working set lives with the caller, and resolved statuses come from the
// latest-status resolver. Concurrent operators racing on the same packages
// are serialized by nothing more than the persisted-status check here,
// which turns the losing scan into a clean ALREADY_UPDATED rejection.
type ScanValidator struct{}

// NewScanValidator creates a new ScanValidator instance.
func NewScanValidator() ScanValidator {
	return ScanValidator{}
}

// Validate partitions scannedIDs into accepted and rejected packages.
//
// Parameters:
//   - shp: the shipment being scanned; scans are always scoped to one shipment
//   - scannedIDs: the batch proposed by the operator, in scan order
//   - sessionScanned: packages already accepted earlier in this UI session
//   - resolved: resolved current status per member package
//   - expectedPre: the status a package must be in for this scan to apply
//
// A package is accepted only when it is a member of shp, not a session
// duplicate, and its resolved status equals expectedPre.
func (v ScanValidator) Validate(
	shp *shipment.Shipment,
	scannedIDs []kernel.PackageID,
	sessionScanned []kernel.PackageID,
	resolved map[kernel.PackageID]parcel.Status,
	expectedPre parcel.Status,
) (ScanResult, error) {
	if err := shp.Validate(); err != nil {
		return ScanResult{}, err
	}
	if err := expectedPre.Validate(); err != nil {
		return ScanResult{}, err
	}

	seen := make(map[kernel.PackageID]struct{}, len(sessionScanned)+len(scannedIDs))
	for _, id := range sessionScanned {
		seen[id] = struct{}{}
	}

	result := ScanResult{
		Accepted: make([]kernel.PackageID, 0, len(scannedIDs)),
		Rejected: make([]Rejection, 0),
	}

	for _, id := range scannedIDs {
		if err := id.Validate(); err != nil {
			return ScanResult{}, err
		}

		if !shp.HasMember(id) {
			result.Rejected = append(result.Rejected, Rejection{PackageID: id, Reason: Unrecognized})
			continue
		}

		if _, dup := seen[id]; dup {
			result.Rejected = append(result.Rejected, Rejection{PackageID: id, Reason: AlreadyScanned})
			continue
		}

		status, ok := resolved[id]
		if !ok {
			return ScanResult{}, errs.NewObjectNotFoundErrorWithCause(
				"packageId", id.String(), ErrResolvedStatusMissing,
			)
		}

		if status != expectedPre {
			result.Rejected = append(result.Rejected, Rejection{PackageID: id, Reason: AlreadyUpdated})
			continue
		}

		seen[id] = struct{}{}
		result.Accepted = append(result.Accepted, id)
	}

	return result, nil
}
