package commands

import (
	"context"
	"errors"
	"time"

	"freightops/internal/core/domain/model/outbox"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
)

// MarkPackageMissingCommandHandler records a package as missing: a Missing
// log entry, the status cache update, and a MISSING mark on the open
// membership row if the package is on a leg, all in one transaction.
type MarkPackageMissingCommandHandler struct {
	uowFactory MissingUoWFactory
}

// NewMarkPackageMissingCommandHandler creates a handler for missing reports.
func NewMarkPackageMissingCommandHandler(uowFactory MissingUoWFactory) MarkPackageMissingCommandHandler {
	return MarkPackageMissingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the missing report.
func (h *MarkPackageMissingCommandHandler) Handle(ctx context.Context, cmd MarkPackageMissingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	logRepo := uow.PackageLogRepository()
	outboxRepo := uow.OutboxRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if err := pkg.MarkMissing(); err != nil {
		return err
	}

	entry, err := parcel.NewLogEntry(
		pkg.ID(), parcel.Missing, cmd.ActorID(), cmd.Description(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	appended, err := logRepo.Append(ctx, entry)
	if err != nil {
		return err
	}

	if err := packageRepo.Update(ctx, pkg); err != nil {
		return err
	}

	if err := h.markOpenMembership(ctx, uow, pkg); err != nil {
		return err
	}

	event, err := outbox.NewPackageStatusEvent(appended)
	if err != nil {
		return err
	}
	if err := outboxRepo.Add(ctx, []outbox.Event{event}); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// markOpenMembership flips the package's member row to MISSING on its most
// recent leg, if that leg has not finished with the package yet. Packages
// outside any shipment are a normal case, not an error.
func (h *MarkPackageMissingCommandHandler) markOpenMembership(
	ctx context.Context,
	uow MissingUoW,
	pkg *parcel.Package,
) error {
	shipmentRepo := uow.ShipmentRepository()

	shp, err := shipmentRepo.GetByMemberPackage(ctx, pkg.ID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	member, ok := shp.Member(pkg.ID())
	if !ok {
		return nil
	}
	if member.Status() != shipment.MemberPreparing && member.Status() != shipment.MemberInTransit {
		return nil
	}

	if err := shp.SetMemberStatus(pkg.ID(), shipment.MemberMissing); err != nil {
		return err
	}

	return shipmentRepo.Update(ctx, shp)
}
