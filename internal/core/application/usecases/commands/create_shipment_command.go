package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to group registered packages
// into a new transport leg.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentType shipment.Type
	packageIDs   []kernel.PackageID
	actorID      kernel.ActorID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to open a new shipment.
// Membership rules (non-empty, no duplicates) are enforced by the
// aggregate constructor at handle time.
func NewCreateShipmentCommand(
	shipmentType shipment.Type,
	packageIDs []kernel.PackageID,
	actorID kernel.ActorID,
) (CreateShipmentCommand, error) {
	createCommand := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		createCommand.setShipmentType(shipmentType),
		createCommand.setPackageIDs(packageIDs),
		createCommand.setActorID(actorID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return createCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentType returns the kind of transport leg to open.
func (c CreateShipmentCommand) ShipmentType() shipment.Type {
	return c.shipmentType
}

// PackageIDs returns the member packages of the new shipment.
func (c CreateShipmentCommand) PackageIDs() []kernel.PackageID {
	return c.packageIDs
}

// ActorID returns the operator opening the shipment.
func (c CreateShipmentCommand) ActorID() kernel.ActorID {
	return c.actorID
}

func (c *CreateShipmentCommand) setShipmentType(shipmentType shipment.Type) error {
	if err := shipmentType.Validate(); err != nil {
		return err
	}

	c.shipmentType = shipmentType
	return nil
}

func (c *CreateShipmentCommand) setPackageIDs(packageIDs []kernel.PackageID) error {
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.packageIDs = packageIDs
	return nil
}

func (c *CreateShipmentCommand) setActorID(actorID kernel.ActorID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
