package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/outbox"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
)

// CreateShipmentCommandHandler opens a new shipment in Preparing status.
// Every member package must already be registered; the shipment row, member
// rows, the first Preparing log entry and the outbox event are written in
// one transaction.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the creation command and returns the new shipment id.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
) (kernel.ShipmentID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.ShipmentID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.ShipmentID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	shipmentLogRepo := uow.ShipmentLogRepository()
	packageRepo := uow.PackageRepository()
	outboxRepo := uow.OutboxRepository()

	packages, err := packageRepo.GetByIDs(ctx, cmd.PackageIDs())
	if err != nil {
		return kernel.ShipmentID{}, err
	}
	if len(packages) != len(cmd.PackageIDs()) {
		return kernel.ShipmentID{}, errs.NewObjectNotFoundError("packageIds", cmd.PackageIDs())
	}

	shipmentID, err := shipmentRepo.NextID(ctx)
	if err != nil {
		return kernel.ShipmentID{}, err
	}

	shp, err := shipment.NewShipment(shipmentID, cmd.ShipmentType(), cmd.PackageIDs())
	if err != nil {
		return kernel.ShipmentID{}, err
	}

	if err := shipmentRepo.Add(ctx, shp); err != nil {
		return kernel.ShipmentID{}, err
	}

	entry, err := shipment.NewLogEntry(
		shp.ID(), shipment.Preparing, cmd.ActorID(), "", time.Now().UTC(),
	)
	if err != nil {
		return kernel.ShipmentID{}, err
	}

	appended, err := shipmentLogRepo.Append(ctx, entry)
	if err != nil {
		return kernel.ShipmentID{}, err
	}

	event, err := outbox.NewShipmentStatusEvent(appended)
	if err != nil {
		return kernel.ShipmentID{}, err
	}
	if err := outboxRepo.Add(ctx, []outbox.Event{event}); err != nil {
		return kernel.ShipmentID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.ShipmentID{}, err
	}

	return shp.ID(), nil
}
