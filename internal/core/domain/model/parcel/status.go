package parcel

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// Status represents the lifecycle state of a package.
//
// The transition graph only has forward edges:
//
//	INCOMING ──> IN_WAREHOUSE ──> SORTING ──┬──> TRANSFERRING_FORWARDER ──> TRANSFERRED_FORWARDER
//	                  ^                     ├──> TRANSFERRING_WAREHOUSE ──┘ (back to IN_WAREHOUSE)
//	                  └─────────────────────┴──> OUT_FOR_DELIVERY ──> DELIVERED
//
// MISSING is reachable from every non-terminal status and has no outgoing
// edges; recovery from it is a manual, out-of-band process.
//
// The graph lives in one place (transitions) instead of being re-derived by
// every caller, and is consulted through CanTransitionTo / TransitionTo.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Incoming is the initial status assigned at manifest intake, while the
	// package rides an overseas leg towards the warehouse.
	Incoming

	// InWarehouse means the package has been received at the warehouse.
	InWarehouse

	// Sorting means warehouse staff are sorting the package onto its next leg.
	Sorting

	// TransferringForwarder means the package is on a leg towards a partner
	// forwarder.
	TransferringForwarder

	// TransferringWarehouse means the package is on a leg towards another
	// warehouse.
	TransferringWarehouse

	// OutForDelivery means a driver is carrying the package to the consignee.
	OutForDelivery

	// TransferredForwarder is terminal: the partner forwarder has taken over.
	TransferredForwarder

	// Delivered is terminal: the consignee has the package.
	Delivered

	// Missing flags a package that could not be accounted for. Dead end.
	Missing
)

// statusStrings maps every Status to its wire and storage representation.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "UNKNOWN",
		Incoming:              "INCOMING",
		InWarehouse:           "IN_WAREHOUSE",
		Sorting:               "SORTING",
		TransferringForwarder: "TRANSFERRING_FORWARDER",
		TransferringWarehouse: "TRANSFERRING_WAREHOUSE",
		OutForDelivery:        "OUT_FOR_DELIVERY",
		TransferredForwarder:  "TRANSFERRED_FORWARDER",
		Delivered:             "DELIVERED",
		Missing:               "MISSING",
	}
}

// transitions is the single authoritative transition graph for packages.
// An edge from A to B means "a package currently at A may move to B".
// MISSING edges are handled separately in CanTransitionTo because they
// exist from every non-terminal vertex.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Incoming:              {InWarehouse},
		InWarehouse:           {Sorting},
		Sorting:               {TransferringForwarder, TransferringWarehouse, OutForDelivery},
		TransferringForwarder: {TransferredForwarder},
		TransferringWarehouse: {InWarehouse},
		OutForDelivery:        {Delivered},
	}
}

// StatusFromString parses the wire representation of a package status.
// Returns an error for unrecognized or UNKNOWN values.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"package status is invalid",
		fmt.Errorf("%q is not a package status", s),
	)
}

// Validate checks that the status is one of the defined package statuses.
// Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"package status is invalid",
			fmt.Errorf("%d is not a package status", s),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "IN_WAREHOUSE".
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status ends a package's journey.
// Missing is deliberately not terminal here: it ends automatic processing
// but marks an open problem, not a finished delivery.
func (s Status) IsTerminal() bool {
	return s == TransferredForwarder || s == Delivered
}

// CanTransitionTo reports whether the transition graph has an edge from
// s to target. Re-asserting the current status is not an edge; appending
// a redundant log entry is legal at the store level but is not a
// transition.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	if target == Missing {
		return !s.IsTerminal() && s != Missing
	}

	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status along a graph edge.
//
// Returns:
//   - (target, nil) when the edge exists
//   - (0, error) when the transition is not legal from the current status
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"package status transition is invalid",
			fmt.Errorf("cannot move from %s to %s", s, target),
		)
	}
	return target, nil
}

// Description returns the operator-facing rationale recorded on status-log
// entries when no custom description is supplied.
func (s Status) Description() string {
	switch s {
	case Incoming:
		return "Package is on its way to the warehouse"
	case InWarehouse:
		return "Package has been received at the warehouse"
	case Sorting:
		return "Package is now being sorted"
	case TransferringForwarder:
		return "Package is being transferred to a partner forwarder"
	case TransferringWarehouse:
		return "Package is being transferred to another warehouse"
	case OutForDelivery:
		return "Package is out for delivery"
	case TransferredForwarder:
		return "Package has been handed over to the partner forwarder"
	case Delivered:
		return "Package has been delivered"
	case Missing:
		return "Package has been reported missing"
	default:
		return ""
	}
}
