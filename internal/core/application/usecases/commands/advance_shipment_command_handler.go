package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/outbox"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
)

// AdvanceShipmentCommandHandler applies the reconciler gate and, when the
// advance is allowed, appends the shipment log entry and refreshes the
// shipment status cache in one transaction. A blocked advance returns the
// blocking package ids without error and without writes.
//
// Member package logs are never touched here: packages reach their statuses
// through scans, the shipment's own bookkeeping is a separate explicit step.
type AdvanceShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	reconciler services.ShipmentReconciler
}

// NewAdvanceShipmentCommandHandler creates a handler for shipment advances.
func NewAdvanceShipmentCommandHandler(uowFactory ShipmentUoWFactory) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewShipmentReconciler(),
	}
}

// Handle processes the advance request and returns the gate verdict.
func (h *AdvanceShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceShipmentCommand,
) (services.ReconcileResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.ReconcileResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.ReconcileResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	shipmentLogRepo := uow.ShipmentLogRepository()
	packageLogRepo := uow.PackageLogRepository()
	outboxRepo := uow.OutboxRepository()

	shp, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return services.ReconcileResult{}, err
	}

	latest, err := packageLogRepo.GetLatestBatch(ctx, shp.MemberIDs())
	if err != nil {
		return services.ReconcileResult{}, err
	}

	resolved := make(map[kernel.PackageID]parcel.Status, len(latest))
	for id, entry := range latest {
		resolved[id] = entry.Status()
	}

	result, err := h.reconciler.CanAdvance(shp, cmd.TargetStatus(), resolved)
	if err != nil {
		return services.ReconcileResult{}, err
	}

	if !result.Allowed {
		return result, nil
	}

	if err := shp.TransitionTo(cmd.TargetStatus()); err != nil {
		return services.ReconcileResult{}, err
	}

	entry, err := shipment.NewLogEntry(
		shp.ID(), cmd.TargetStatus(), cmd.ActorID(), cmd.Description(), time.Now().UTC(),
	)
	if err != nil {
		return services.ReconcileResult{}, err
	}

	appended, err := shipmentLogRepo.Append(ctx, entry)
	if err != nil {
		return services.ReconcileResult{}, err
	}

	if err := shipmentRepo.Update(ctx, shp); err != nil {
		return services.ReconcileResult{}, err
	}

	event, err := outbox.NewShipmentStatusEvent(appended)
	if err != nil {
		return services.ReconcileResult{}, err
	}
	if err := outboxRepo.Add(ctx, []outbox.Event{event}); err != nil {
		return services.ReconcileResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return services.ReconcileResult{}, err
	}

	return result, nil
}
