package commands

import (
	"context"
)

// ArchivePackageCommandHandler archives a finished package. Only terminal
// or Missing packages are archivable, enforced by the aggregate.
type ArchivePackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewArchivePackageCommandHandler creates a handler for package archival.
func NewArchivePackageCommandHandler(uowFactory PackageUoWFactory) ArchivePackageCommandHandler {
	return ArchivePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the archival request.
func (h *ArchivePackageCommandHandler) Handle(ctx context.Context, cmd ArchivePackageCommand) error {
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

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if err := pkg.Archive(); err != nil {
		return err
	}

	if err := packageRepo.Update(ctx, pkg); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
