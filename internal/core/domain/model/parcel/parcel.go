package parcel

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not
	// created through NewPackage or RestorePackage.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

	// ErrPackageIsArchived is returned when a status change is attempted on an
	// archived package.
	ErrPackageIsArchived = errors.New("package is archived")

	// ErrPackageIsNotArchivable is returned when archiving a package that has
	// not finished its journey.
	ErrPackageIsNotArchivable = errors.New("only packages in a terminal or missing status can be archived")
)

// Package is the aggregate root for a single physical parcel.
//
// The status field is the sanctioned denormalized cache of the package's
// status log: it exists for fast filtering and must always equal the
// latest log entry. It is only ever written together with a log append,
// inside the same transaction.
//
// Packages are created once at manifest intake and never deleted. End of
// life is the archived flag, and losing track of a parcel is the MISSING
// status, not a removal.
type Package struct {
	id kernel.PackageID

	// status caches the latest status-log entry for this package.
	status Status

	// archived soft-deletes the package from operational screens.
	archived bool

	isConstructed bool
}

// NewPackage creates a package entering the system at manifest intake.
// Every new package starts its journey as INCOMING.
func NewPackage(id kernel.PackageID) (*Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Package{
		id:            id,
		status:        Incoming,
		isConstructed: true,
	}, nil
}

// RestorePackage reconstructs a package from persistence.
func RestorePackage(id kernel.PackageID, status Status, archived bool) (*Package, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Package{
		id:            id,
		status:        status,
		archived:      archived,
		isConstructed: true,
	}, nil
}

// Validate ensures the package was created through a constructor.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// ID returns the package's tracking identifier.
func (p *Package) ID() kernel.PackageID {
	return p.id
}

// Status returns the cached current status.
func (p *Package) Status() Status {
	return p.status
}

// IsArchived reports whether the package is soft-deleted.
func (p *Package) IsArchived() bool {
	return p.archived
}

// IsEqual compares two packages by tracking id.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// TransitionTo advances the cached status along the transition graph.
// Callers append the matching log entry in the same transaction; the
// aggregate only guards the graph edge.
func (p *Package) TransitionTo(target Status) error {
	if p.archived {
		return ErrPackageIsArchived
	}

	newStatus, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// MarkMissing moves the package to the MISSING side status.
// Legal from any non-terminal status; a second report is rejected by the
// transition graph since MISSING has no outgoing edges.
func (p *Package) MarkMissing() error {
	return p.TransitionTo(Missing)
}

// Archive soft-deletes the package. Only packages that reached a terminal
// status, or were written off as missing, can be archived.
func (p *Package) Archive() error {
	if !p.status.IsTerminal() && p.status != Missing {
		return errs.NewValueIsInvalidErrorWithCause("package cannot be archived", ErrPackageIsNotArchivable)
	}

	p.archived = true
	return nil
}

// Unarchive restores an archived package to operational screens.
func (p *Package) Unarchive() {
	p.archived = false
}
