package shipment

import (
	"errors"
	"fmt"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
)

// ErrMemberIsNotConstructed is returned when a Member was not created
// through NewMember or RestoreMember.
var ErrMemberIsNotConstructed = errors.New("Member must be created via NewMember or RestoreMember")

// MemberStatus is the per-leg status of one package within one shipment.
// It is distinct from the package's global status: a package can be
// IN_WAREHOUSE globally while its member row for a finished transfer leg
// reads COMPLETED.
//
// State transitions:
//
//	PREPARING ──> IN_TRANSIT ──> COMPLETED
//
// MISSING is reachable from PREPARING and IN_TRANSIT when the package is
// reported missing mid-leg.
type MemberStatus int

const (
	// MemberStatusUnknown represents an invalid or undefined member status.
	MemberStatusUnknown MemberStatus = iota

	// MemberPreparing means the member still awaits its departure scan.
	MemberPreparing

	// MemberInTransit means the member is riding the leg.
	MemberInTransit

	// MemberCompleted means the member finished this leg.
	MemberCompleted

	// MemberMissing means the member was reported missing during this leg.
	MemberMissing
)

// memberStatusStrings maps every MemberStatus to its wire representation.
func memberStatusStrings() map[MemberStatus]string {
	return map[MemberStatus]string{
		MemberStatusUnknown: "UNKNOWN",
		MemberPreparing:     "PREPARING",
		MemberInTransit:     "IN_TRANSIT",
		MemberCompleted:     "COMPLETED",
		MemberMissing:       "MISSING",
	}
}

// MemberStatusFromString parses the wire representation of a member status.
func MemberStatusFromString(s string) (MemberStatus, error) {
	for status, str := range memberStatusStrings() {
		if str == s && status != MemberStatusUnknown {
			return status, nil
		}
	}
	return MemberStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"member status is invalid",
		fmt.Errorf("%q is not a member status", s),
	)
}

// Validate checks that the member status is one of the defined values.
func (s MemberStatus) Validate() error {
	if _, ok := memberStatusStrings()[s]; !ok || s == MemberStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"member status is invalid",
			fmt.Errorf("%d is not a member status", s),
		)
	}
	return nil
}

// String returns the wire representation, e.g. "IN_TRANSIT".
func (s MemberStatus) String() string {
	if str, ok := memberStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Member is one shipment-package join row: a package's participation in
// one specific leg, with its own per-leg status cache.
type Member struct {
	packageID kernel.PackageID
	status    MemberStatus

	isConstructed bool
}

// NewMember creates a member row for a package joining a shipment.
// Members start the leg as PREPARING.
func NewMember(packageID kernel.PackageID) (Member, error) {
	if err := packageID.Validate(); err != nil {
		return Member{}, err
	}

	return Member{
		packageID:     packageID,
		status:        MemberPreparing,
		isConstructed: true,
	}, nil
}

// RestoreMember reconstructs a member row from persistence.
func RestoreMember(packageID kernel.PackageID, status MemberStatus) (Member, error) {
	if err := errors.Join(packageID.Validate(), status.Validate()); err != nil {
		return Member{}, err
	}

	return Member{
		packageID:     packageID,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the member was created through a constructor.
func (m Member) Validate() error {
	if !m.isConstructed {
		return ErrMemberIsNotConstructed
	}
	return nil
}

// PackageID returns the tracking id of the member package.
func (m Member) PackageID() kernel.PackageID {
	return m.packageID
}

// Status returns the member's per-leg status.
func (m Member) Status() MemberStatus {
	return m.status
}
