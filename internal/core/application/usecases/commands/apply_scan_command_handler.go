package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/outbox"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/pkg/errs"
)

// ApplyScanCommandHandler validates a scan batch against the shipment and
// the status log, then applies the accepted subset atomically: one log entry
// per package, the package status cache, the member join-row status and one
// outbox event each, in a single transaction.
//
// Rejected ids never block accepted ones; the caller receives per-id
// verdicts and surfaces them individually.
type ApplyScanCommandHandler struct {
	uowFactory    ScanUoWFactory
	scanValidator services.ScanValidator
}

// NewApplyScanCommandHandler creates a handler for scan submissions.
func NewApplyScanCommandHandler(uowFactory ScanUoWFactory) ApplyScanCommandHandler {
	return ApplyScanCommandHandler{
		uowFactory:    uowFactory,
		scanValidator: services.NewScanValidator(),
	}
}

// Handle processes one scan submission and returns the per-id verdicts.
// When every scanned id is rejected, nothing is written and the verdicts are
// returned without error.
func (h *ApplyScanCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyScanCommand,
) (services.ScanResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.ScanResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.ScanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	packageRepo := uow.PackageRepository()
	logRepo := uow.PackageLogRepository()
	outboxRepo := uow.OutboxRepository()

	shp, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return services.ScanResult{}, err
	}

	expectedPre, err := expectedPreScanStatus(shp.Type(), cmd.PackageStatus())
	if err != nil {
		return services.ScanResult{}, err
	}

	latest, err := logRepo.GetLatestBatch(ctx, shp.MemberIDs())
	if err != nil {
		return services.ScanResult{}, err
	}

	resolved := make(map[kernel.PackageID]parcel.Status, len(latest))
	for id, entry := range latest {
		resolved[id] = entry.Status()
	}

	result, err := h.scanValidator.Validate(
		shp, cmd.ScannedIDs(), cmd.SessionScannedIDs(), resolved, expectedPre,
	)
	if err != nil {
		return services.ScanResult{}, err
	}

	if len(result.Accepted) == 0 {
		return result, nil
	}

	packages, err := packageRepo.GetByIDs(ctx, result.Accepted)
	if err != nil {
		return services.ScanResult{}, err
	}
	if len(packages) != len(result.Accepted) {
		return services.ScanResult{}, errs.NewObjectNotFoundError("packageIds", result.Accepted)
	}

	now := time.Now().UTC()
	entries := make([]parcel.LogEntry, 0, len(packages))

	for _, pkg := range packages {
		entry, err := parcel.NewLogEntry(
			pkg.ID(), cmd.PackageStatus(), cmd.ActorID(), cmd.Description(), now,
		)
		if err != nil {
			return services.ScanResult{}, err
		}
		entries = append(entries, entry)

		if err := pkg.TransitionTo(cmd.PackageStatus()); err != nil {
			return services.ScanResult{}, err
		}
		if err := packageRepo.Update(ctx, pkg); err != nil {
			return services.ScanResult{}, err
		}

		if err := shp.SetMemberStatus(pkg.ID(), cmd.MemberStatus()); err != nil {
			return services.ScanResult{}, err
		}
	}

	appended, err := logRepo.AppendMany(ctx, entries)
	if err != nil {
		return services.ScanResult{}, err
	}

	events := make([]outbox.Event, 0, len(appended))
	for _, entry := range appended {
		event, err := outbox.NewPackageStatusEvent(entry)
		if err != nil {
			return services.ScanResult{}, err
		}
		events = append(events, event)
	}
	if err := outboxRepo.Add(ctx, events); err != nil {
		return services.ScanResult{}, err
	}

	if err := shipmentRepo.Update(ctx, shp); err != nil {
		return services.ScanResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return services.ScanResult{}, err
	}

	return result, nil
}

// expectedPreScanStatus maps the requested target status to the status a
// package must currently hold for the scan to apply. Leg-completion scans
// expect the type's pre-transit status; staging scans expect Sorting.
// Incoming legs have no staging scan, packages enter at Incoming already.
func expectedPreScanStatus(shipmentType shipment.Type, target parcel.Status) (parcel.Status, error) {
	switch {
	case target == shipmentType.LegCompletedPackageStatus():
		return shipmentType.PreTransitPackageStatus(), nil
	case target == shipmentType.PreTransitPackageStatus() && shipmentType != shipment.TypeIncoming:
		return parcel.Sorting, nil
	default:
		return parcel.Unknown, errs.NewValueIsInvalidError(
			"packageStatus is not a scan target for this shipment type",
		)
	}
}
