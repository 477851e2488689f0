package commands

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var (
	ErrApplyScanCommandIsNotConstructed = errors.New(
		"ApplyScanCommand must be created via NewApplyScanCommand constructor",
	)
	ErrScannedIDsAreRequired = errors.New("at least one scanned package id is required")
)

// ApplyScanCommand represents one scan submission from an operator screen:
// a batch of scanned package ids proposed for a status transition within
// one shipment.
//
// Example:
//
//	cmd, err := NewApplyScanCommand(
//	    shipmentID,
//	    scannedIDs,
//	    sessionScannedIDs,
//	    parcel.InWarehouse,
//	    shipment.MemberCompleted,
//	    actorID,
//	    "unloading scan at dock 3",
//	)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewApplyScanCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
type ApplyScanCommand struct { //nolint:recvcheck //using for validation
	shipmentID        kernel.ShipmentID
	scannedIDs        []kernel.PackageID
	sessionScannedIDs []kernel.PackageID
	packageStatus     parcel.Status
	memberStatus      shipment.MemberStatus
	actorID           kernel.ActorID
	description       string

	guard guard.ConstructorGuard
}

// NewApplyScanCommand creates a scan command. sessionScannedIDs is the set of
// packages already accepted earlier in the same UI session; re-submitting one
// of them yields an ALREADY_SCANNED rejection rather than a double append.
func NewApplyScanCommand(
	shipmentID kernel.ShipmentID,
	scannedIDs []kernel.PackageID,
	sessionScannedIDs []kernel.PackageID,
	packageStatus parcel.Status,
	memberStatus shipment.MemberStatus,
	actorID kernel.ActorID,
	description string,
) (ApplyScanCommand, error) {
	scanCommand := ApplyScanCommand{
		guard:       guard.NewConstructorGuard(),
		description: description,
	}

	if err := errors.Join(
		scanCommand.setShipmentID(shipmentID),
		scanCommand.setScannedIDs(scannedIDs),
		scanCommand.setSessionScannedIDs(sessionScannedIDs),
		scanCommand.setPackageStatus(packageStatus),
		scanCommand.setMemberStatus(memberStatus),
		scanCommand.setActorID(actorID),
	); err != nil {
		return ApplyScanCommand{}, err
	}

	return scanCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyScanCommand) Validate() error {
	return c.guard.Validate(ErrApplyScanCommandIsNotConstructed)
}

// ShipmentID returns the shipment the scan is scoped to.
func (c ApplyScanCommand) ShipmentID() kernel.ShipmentID {
	return c.shipmentID
}

// ScannedIDs returns the scanned package ids in scan order.
func (c ApplyScanCommand) ScannedIDs() []kernel.PackageID {
	return c.scannedIDs
}

// SessionScannedIDs returns the packages already accepted in this session.
func (c ApplyScanCommand) SessionScannedIDs() []kernel.PackageID {
	return c.sessionScannedIDs
}

// PackageStatus returns the status accepted packages transition to.
func (c ApplyScanCommand) PackageStatus() parcel.Status {
	return c.packageStatus
}

// MemberStatus returns the join-row status accepted packages are set to.
func (c ApplyScanCommand) MemberStatus() shipment.MemberStatus {
	return c.memberStatus
}

// ActorID returns the operator performing the scan.
func (c ApplyScanCommand) ActorID() kernel.ActorID {
	return c.actorID
}

// Description returns the free-text rationale for the log entries.
func (c ApplyScanCommand) Description() string {
	return c.description
}

func (c *ApplyScanCommand) setShipmentID(shipmentID kernel.ShipmentID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ApplyScanCommand) setScannedIDs(scannedIDs []kernel.PackageID) error {
	if len(scannedIDs) == 0 {
		return ErrScannedIDsAreRequired
	}

	for _, id := range scannedIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.scannedIDs = scannedIDs
	return nil
}

func (c *ApplyScanCommand) setSessionScannedIDs(sessionScannedIDs []kernel.PackageID) error {
	for _, id := range sessionScannedIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.sessionScannedIDs = sessionScannedIDs
	return nil
}

func (c *ApplyScanCommand) setPackageStatus(status parcel.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.packageStatus = status
	return nil
}

func (c *ApplyScanCommand) setMemberStatus(status shipment.MemberStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.memberStatus = status
	return nil
}

func (c *ApplyScanCommand) setActorID(actorID kernel.ActorID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
