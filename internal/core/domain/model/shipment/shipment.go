package shipment

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrShipmentHasNoPackages is returned when creating a shipment without
	// members. A shipment is a grouping; an empty one has no reason to exist
	// and would vacuously pass every member gate.
	ErrShipmentHasNoPackages = errors.New("shipment must contain at least one package")

	// ErrPackageNotInShipment is returned when a member operation names a
	// package that does not belong to this shipment.
	ErrPackageNotInShipment = errors.New("package is not a member of this shipment")

	// ErrDuplicateMember is returned when the same package appears twice in
	// a shipment's member list.
	ErrDuplicateMember = errors.New("package is already a member of this shipment")
)

// Shipment is the aggregate root for one transport leg moving a batch of
// packages together.
//
// The status field is the sanctioned denormalized cache of the shipment's
// own status log, written only together with a log append. Member rows
// carry per-leg statuses independent of the members' global package
// statuses; the two meet only in the reconciler, which gates shipment
// advances on the members' resolved package statuses.
type Shipment struct {
	id           kernel.ShipmentID
	shipmentType Type

	// status caches the latest shipment status-log entry.
	status Status

	members []Member

	isConstructed bool
}

// NewShipment creates a shipment grouping packages for a transport leg.
// All members start as PREPARING; an empty package list is rejected.
func NewShipment(id kernel.ShipmentID, shipmentType Type, packageIDs []kernel.PackageID) (*Shipment, error) {
	if err := errors.Join(id.Validate(), shipmentType.Validate()); err != nil {
		return nil, err
	}

	if len(packageIDs) == 0 {
		return nil, ErrShipmentHasNoPackages
	}

	members := make([]Member, 0, len(packageIDs))
	seen := make(map[kernel.PackageID]struct{}, len(packageIDs))
	for _, packageID := range packageIDs {
		if _, ok := seen[packageID]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(packageID.String(), ErrDuplicateMember)
		}
		seen[packageID] = struct{}{}

		member, err := NewMember(packageID)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return &Shipment{
		id:            id,
		shipmentType:  shipmentType,
		status:        Preparing,
		members:       members,
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence.
// Unlike NewShipment it tolerates an empty member list so that degenerate
// rows can be loaded, inspected, and rejected by the reconciler instead of
// being unreadable.
func RestoreShipment(
	id kernel.ShipmentID,
	shipmentType Type,
	status Status,
	members []Member,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), shipmentType.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	for _, member := range members {
		if err := member.Validate(); err != nil {
			return nil, err
		}
	}

	return &Shipment{
		id:            id,
		shipmentType:  shipmentType,
		status:        status,
		members:       members,
		isConstructed: true,
	}, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment number.
func (s *Shipment) ID() kernel.ShipmentID {
	return s.id
}

// Type returns the kind of leg this shipment represents.
func (s *Shipment) Type() Type {
	return s.shipmentType
}

// Status returns the cached current shipment status.
func (s *Shipment) Status() Status {
	return s.status
}

// Members returns a copy of the shipment's member rows.
func (s *Shipment) Members() []Member {
	members := make([]Member, len(s.members))
	copy(members, s.members)
	return members
}

// MemberIDs returns the tracking ids of all member packages.
func (s *Shipment) MemberIDs() []kernel.PackageID {
	ids := make([]kernel.PackageID, 0, len(s.members))
	for _, member := range s.members {
		ids = append(ids, member.packageID)
	}
	return ids
}

// HasMember reports whether the package belongs to this shipment.
// A package id valid for a different shipment is simply not a member here.
func (s *Shipment) HasMember(packageID kernel.PackageID) bool {
	for _, member := range s.members {
		if member.packageID.IsEqual(packageID) {
			return true
		}
	}
	return false
}

// Member returns the member row for a package, if it belongs to this
// shipment.
func (s *Shipment) Member(packageID kernel.PackageID) (Member, bool) {
	for _, member := range s.members {
		if member.packageID.IsEqual(packageID) {
			return member, true
		}
	}
	return Member{}, false
}

// IsEqual compares two shipments by shipment number.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// TransitionTo advances the cached shipment status along its transition
// graph. The reconciler gate over member statuses lives in the
// application layer; the aggregate only guards the graph edge.
func (s *Shipment) TransitionTo(target Status) error {
	newStatus, err := s.status.TransitionTo(target)
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// SetMemberStatus updates the per-leg status cache of one member row.
func (s *Shipment) SetMemberStatus(packageID kernel.PackageID, status MemberStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	for i, member := range s.members {
		if member.packageID.IsEqual(packageID) {
			s.members[i].status = status
			return nil
		}
	}
	return errs.NewObjectNotFoundErrorWithCause("packageId", packageID.String(), ErrPackageNotInShipment)
}
