package shipment

import (
	"fmt"

	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/pkg/errs"
)

// Type is the kind of transport leg a shipment represents. The type is
// fixed at creation and never changes.
//
// Each type carries one pair of expected member package statuses consulted
// by the reconciler: the status every member must be in before the
// shipment may depart, and the status that marks a member as done with
// this leg. Modeling the pair per type keeps the dispatch in one place
// instead of scattering per-screen conditionals.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeIncoming is an overseas leg bringing agent-intake packages to the
	// warehouse.
	TypeIncoming

	// TypeDelivery is a last-mile leg from the warehouse to consignees.
	TypeDelivery

	// TypeTransferForwarder is a handover leg to a partner forwarder.
	TypeTransferForwarder

	// TypeTransferWarehouse is a relocation leg between warehouses.
	TypeTransferWarehouse
)

// typeStrings maps every Type to its wire and storage representation.
func typeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:           "UNKNOWN",
		TypeIncoming:          "INCOMING",
		TypeDelivery:          "DELIVERY",
		TypeTransferForwarder: "TRANSFER_FORWARDER",
		TypeTransferWarehouse: "TRANSFER_WAREHOUSE",
	}
}

// TypeFromString parses the wire representation of a shipment type.
func TypeFromString(s string) (Type, error) {
	for t, str := range typeStrings() {
		if str == s && t != TypeUnknown {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shipment type is invalid",
		fmt.Errorf("%q is not a shipment type", s),
	)
}

// Validate checks that the type is one of the defined shipment types.
func (t Type) Validate() error {
	if _, ok := typeStrings()[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment type is invalid",
			fmt.Errorf("%d is not a shipment type", t),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "TRANSFER_WAREHOUSE".
func (t Type) String() string {
	if str, ok := typeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// PreTransitPackageStatus returns the package status every member must
// have before a shipment of this type may advance to IN_TRANSIT.
func (t Type) PreTransitPackageStatus() parcel.Status {
	switch t {
	case TypeIncoming:
		return parcel.Incoming
	case TypeDelivery:
		return parcel.OutForDelivery
	case TypeTransferForwarder:
		return parcel.TransferringForwarder
	case TypeTransferWarehouse:
		return parcel.TransferringWarehouse
	default:
		return parcel.Unknown
	}
}

// LegCompletedPackageStatus returns the package status that marks a member
// as done with a leg of this type, and that every member must have before
// the shipment may advance to its terminal status.
func (t Type) LegCompletedPackageStatus() parcel.Status {
	switch t {
	case TypeIncoming, TypeTransferWarehouse:
		return parcel.InWarehouse
	case TypeDelivery:
		return parcel.Delivered
	case TypeTransferForwarder:
		return parcel.TransferredForwarder
	default:
		return parcel.Unknown
	}
}

// TerminalStatus returns the terminal shipment status a leg of this type
// ends in: delivery legs complete, every other leg arrives.
func (t Type) TerminalStatus() Status {
	if t == TypeDelivery {
		return Completed
	}
	return Arrived
}
