package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var (
	ErrMarkPackageMissingCommandIsNotConstructed = errors.New(
		"MarkPackageMissingCommand must be created via NewMarkPackageMissingCommand constructor",
	)
	ErrMissingReasonIsRequired = errors.New("a reason is required to mark a package missing")
)

// MarkPackageMissingCommand represents a manual report that a package
// cannot be located. Missing is a dead-end status resolved out-of-band,
// so a human-entered reason is mandatory.
type MarkPackageMissingCommand struct { //nolint:recvcheck //using for validation
	packageID   kernel.PackageID
	actorID     kernel.ActorID
	description string

	guard guard.ConstructorGuard
}

// NewMarkPackageMissingCommand creates a command to mark a package missing.
func NewMarkPackageMissingCommand(
	packageID kernel.PackageID,
	actorID kernel.ActorID,
	description string,
) (MarkPackageMissingCommand, error) {
	missingCommand := MarkPackageMissingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		missingCommand.setPackageID(packageID),
		missingCommand.setActorID(actorID),
		missingCommand.setDescription(description),
	); err != nil {
		return MarkPackageMissingCommand{}, err
	}

	return missingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPackageMissingCommand) Validate() error {
	return c.guard.Validate(ErrMarkPackageMissingCommandIsNotConstructed)
}

// PackageID returns the package being reported missing.
func (c MarkPackageMissingCommand) PackageID() kernel.PackageID {
	return c.packageID
}

// ActorID returns the operator filing the report.
func (c MarkPackageMissingCommand) ActorID() kernel.ActorID {
	return c.actorID
}

// Description returns the human-entered reason for the report.
func (c MarkPackageMissingCommand) Description() string {
	return c.description
}

func (c *MarkPackageMissingCommand) setPackageID(packageID kernel.PackageID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *MarkPackageMissingCommand) setActorID(actorID kernel.ActorID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *MarkPackageMissingCommand) setDescription(description string) error {
	if description == "" {
		return ErrMissingReasonIsRequired
	}

	c.description = description
	return nil
}
