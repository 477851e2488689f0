package kernel

import (
	"fmt"
	"strconv"

	"freightops/internal/pkg/errs"
)

// ErrShipmentIDIsInvalid indicates a non-positive shipment number.
var ErrShipmentIDIsInvalid = errs.NewValueIsInvalidError(
	"ShipmentID must be a positive shipment number",
)

// ShipmentID is the numeric identifier of a transport leg. Shipment numbers
// are assigned sequentially by the persistence layer and referenced by
// warehouse staff, so they stay small human-readable integers rather than
// opaque ids.
type ShipmentID struct {
	value int64
}

// NewShipmentID creates a ShipmentID from a shipment number.
// The number must be positive.
func NewShipmentID(value int64) (ShipmentID, error) {
	if value <= 0 {
		return ShipmentID{}, ErrShipmentIDIsInvalid
	}
	return ShipmentID{value: value}, nil
}

// ShipmentIDFromString parses a shipment number from its string form,
// as received in URL parameters and scan payloads.
func ShipmentIDFromString(s string) (ShipmentID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ShipmentID{}, fmt.Errorf("invalid shipment number: %w", err)
	}
	return NewShipmentID(value)
}

// Value returns the raw shipment number.
func (s ShipmentID) Value() int64 {
	return s.value
}

// String returns the shipment number in decimal form.
func (s ShipmentID) String() string {
	return strconv.FormatInt(s.value, 10)
}

// IsEqual compares two shipment ids by value.
func (s ShipmentID) IsEqual(other ShipmentID) bool {
	return s.value == other.value
}

// Validate checks that the shipment id holds a positive shipment number.
func (s ShipmentID) Validate() error {
	if s.value <= 0 {
		return ErrShipmentIDIsInvalid
	}
	return nil
}
