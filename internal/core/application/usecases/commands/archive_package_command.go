package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrArchivePackageCommandIsNotConstructed = errors.New(
	"ArchivePackageCommand must be created via NewArchivePackageCommand constructor",
)

// ArchivePackageCommand represents a request to hide a finished package
// from active tracking. Archival is not a status change: the log keeps its
// history and no entry is appended.
type ArchivePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.PackageID
	actorID   kernel.ActorID

	guard guard.ConstructorGuard
}

// NewArchivePackageCommand creates a command to archive a package.
func NewArchivePackageCommand(
	packageID kernel.PackageID,
	actorID kernel.ActorID,
) (ArchivePackageCommand, error) {
	archiveCommand := ArchivePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		archiveCommand.setPackageID(packageID),
		archiveCommand.setActorID(actorID),
	); err != nil {
		return ArchivePackageCommand{}, err
	}

	return archiveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchivePackageCommand) Validate() error {
	return c.guard.Validate(ErrArchivePackageCommandIsNotConstructed)
}

// PackageID returns the package to archive.
func (c ArchivePackageCommand) PackageID() kernel.PackageID {
	return c.packageID
}

// ActorID returns the operator archiving the package.
func (c ArchivePackageCommand) ActorID() kernel.ActorID {
	return c.actorID
}

func (c *ArchivePackageCommand) setPackageID(packageID kernel.PackageID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *ArchivePackageCommand) setActorID(actorID kernel.ActorID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
