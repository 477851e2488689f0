package shipment

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	PREPARING ──> IN_TRANSIT ──> ARRIVED | COMPLETED
//
// ARRIVED and COMPLETED are terminal; a shipment is never reopened once it
// reaches either. Which of the two a leg ends in depends on the shipment
// Type.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Preparing means the shipment is being assembled; packages are still
	// being scanned onto it.
	Preparing

	// InTransit means the shipment has departed and is moving.
	InTransit

	// Arrived is terminal for legs that end at a facility: the transport
	// arrived and all members were received.
	Arrived

	// Completed is terminal for delivery legs: every member reached its
	// consignee.
	Completed
)

// statusStrings maps every Status to its wire and storage representation.
func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Preparing:     "PREPARING",
		InTransit:     "IN_TRANSIT",
		Arrived:       "ARRIVED",
		Completed:     "COMPLETED",
	}
}

// statusTransitions is the authoritative transition graph for shipments.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Preparing: {InTransit},
		InTransit: {Arrived, Completed},
	}
}

// StatusFromString parses the wire representation of a shipment status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shipment status is invalid",
		fmt.Errorf("%q is not a shipment status", s),
	)
}

// Validate checks that the status is one of the defined shipment statuses.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%d is not a shipment status", s),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "IN_TRANSIT".
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the shipment's lifecycle has ended.
func (s Status) IsTerminal() bool {
	return s == Arrived || s == Completed
}

// CanTransitionTo reports whether the transition graph has an edge from
// s to target.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	for _, next := range statusTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status along a graph edge.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"shipment status transition is invalid",
			fmt.Errorf("cannot move from %s to %s", s, target),
		)
	}
	return target, nil
}

// Description returns the operator-facing rationale recorded on shipment
// status-log entries when no custom description is supplied.
func (s Status) Description() string {
	switch s {
	case Preparing:
		return "Shipment is being prepared"
	case InTransit:
		return "Shipment is now in transit"
	case Arrived:
		return "Shipment has arrived at its destination"
	case Completed:
		return "Shipment has been completed"
	default:
		return ""
	}
}
