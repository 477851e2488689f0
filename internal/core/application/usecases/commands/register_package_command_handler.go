package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/outbox"
	"freightops/internal/core/domain/model/parcel"
)

// RegisterPackageCommandHandler handles package intake.
// Writes the aggregate row, the initial Incoming log entry and the outbox
// event in one transaction.
type RegisterPackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewRegisterPackageCommandHandler creates a handler for package registration.
func NewRegisterPackageCommandHandler(uowFactory PackageUoWFactory) RegisterPackageCommandHandler {
	return RegisterPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
func (h *RegisterPackageCommandHandler) Handle(ctx context.Context, cmd RegisterPackageCommand) error {
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

	pkg, err := parcel.NewPackage(cmd.PackageID())
	if err != nil {
		return err
	}

	if err := packageRepo.Add(ctx, pkg); err != nil {
		return err
	}

	entry, err := parcel.NewLogEntry(
		pkg.ID(), parcel.Incoming, cmd.ActorID(), cmd.Description(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	appended, err := logRepo.Append(ctx, entry)
	if err != nil {
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
