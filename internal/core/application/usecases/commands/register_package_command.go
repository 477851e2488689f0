package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrRegisterPackageCommandIsNotConstructed = errors.New(
	"RegisterPackageCommand must be created via NewRegisterPackageCommand constructor",
)

// RegisterPackageCommand represents intake of a new package into tracking.
// Registration writes the aggregate row and its first Incoming log entry
// together, so every tracked package has at least one log entry from birth.
type RegisterPackageCommand struct { //nolint:recvcheck //using for validation
	packageID   kernel.PackageID
	actorID     kernel.ActorID
	description string

	guard guard.ConstructorGuard
}

// NewRegisterPackageCommand creates a command to register a package.
func NewRegisterPackageCommand(
	packageID kernel.PackageID,
	actorID kernel.ActorID,
	description string,
) (RegisterPackageCommand, error) {
	registerCommand := RegisterPackageCommand{
		guard:       guard.NewConstructorGuard(),
		description: description,
	}

	if err := errors.Join(
		registerCommand.setPackageID(packageID),
		registerCommand.setActorID(actorID),
	); err != nil {
		return RegisterPackageCommand{}, err
	}

	return registerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPackageCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPackageCommandIsNotConstructed)
}

// PackageID returns the identifier for the new package.
func (c RegisterPackageCommand) PackageID() kernel.PackageID {
	return c.packageID
}

// ActorID returns the operator registering the package.
func (c RegisterPackageCommand) ActorID() kernel.ActorID {
	return c.actorID
}

// Description returns the free-text rationale for the first log entry.
func (c RegisterPackageCommand) Description() string {
	return c.description
}

func (c *RegisterPackageCommand) setPackageID(packageID kernel.PackageID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *RegisterPackageCommand) setActorID(actorID kernel.ActorID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
