package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
	"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
)

// AdvanceShipmentCommand represents a request to move a shipment to its next
// status. The advance is gated on every member package having reached the
// required status for the target.
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.ShipmentID
	targetStatus shipment.Status
	actorID      kernel.ActorID
	description  string

	guard guard.ConstructorGuard
}

// NewAdvanceShipmentCommand creates a command to advance a shipment's status.
func NewAdvanceShipmentCommand(
	shipmentID kernel.ShipmentID,
	targetStatus shipment.Status,
	actorID kernel.ActorID,
	description string,
) (AdvanceShipmentCommand, error) {
	advanceCommand := AdvanceShipmentCommand{
		guard:       guard.NewConstructorGuard(),
		description: description,
	}

	if err := errors.Join(
		advanceCommand.setShipmentID(shipmentID),
		advanceCommand.setTargetStatus(targetStatus),
		advanceCommand.setActorID(actorID),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to advance.
func (c AdvanceShipmentCommand) ShipmentID() kernel.ShipmentID {
	return c.shipmentID
}

// TargetStatus returns the requested shipment status.
func (c AdvanceShipmentCommand) TargetStatus() shipment.Status {
	return c.targetStatus
}

// ActorID returns the operator requesting the advance.
func (c AdvanceShipmentCommand) ActorID() kernel.ActorID {
	return c.actorID
}

// Description returns the free-text rationale for the log entry.
func (c AdvanceShipmentCommand) Description() string {
	return c.description
}

func (c *AdvanceShipmentCommand) setShipmentID(shipmentID kernel.ShipmentID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *AdvanceShipmentCommand) setTargetStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.targetStatus = status
	return nil
}

func (c *AdvanceShipmentCommand) setActorID(actorID kernel.ActorID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
