// Package http exposes the tracking core over REST with echo. Handlers only
// translate between wire DTOs and commands or queries; every decision about
// a status change lives in the application and domain layers.
package http

import (
	"errors"
	"net/http"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// actorHeader names the authenticated operator performing the request.
// Authentication itself happens upstream; this service only records who.
const actorHeader = "X-Actor-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerPackageHandler    commands.RegisterPackageCommandHandler
	markPackageMissingHandler commands.MarkPackageMissingCommandHandler
	archivePackageHandler     commands.ArchivePackageCommandHandler
	createShipmentHandler     commands.CreateShipmentCommandHandler
	applyScanHandler          commands.ApplyScanCommandHandler
	advanceShipmentHandler    commands.AdvanceShipmentCommandHandler

	// Query handlers
	getLatestStatusHandler            queries.GetLatestStatusQueryHandler
	getPackageHistoryHandler          queries.GetPackageHistoryQueryHandler
	getShipmentPackageStatusesHandler queries.GetShipmentPackageStatusesQueryHandler
	canAdvanceShipmentHandler         queries.CanAdvanceShipmentQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerPackageHandler commands.RegisterPackageCommandHandler,
	markPackageMissingHandler commands.MarkPackageMissingCommandHandler,
	archivePackageHandler commands.ArchivePackageCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	applyScanHandler commands.ApplyScanCommandHandler,
	advanceShipmentHandler commands.AdvanceShipmentCommandHandler,
	getLatestStatusHandler queries.GetLatestStatusQueryHandler,
	getPackageHistoryHandler queries.GetPackageHistoryQueryHandler,
	getShipmentPackageStatusesHandler queries.GetShipmentPackageStatusesQueryHandler,
	canAdvanceShipmentHandler queries.CanAdvanceShipmentQueryHandler,
) *Server {
	return &Server{
		registerPackageHandler:            registerPackageHandler,
		markPackageMissingHandler:         markPackageMissingHandler,
		archivePackageHandler:             archivePackageHandler,
		createShipmentHandler:             createShipmentHandler,
		applyScanHandler:                  applyScanHandler,
		advanceShipmentHandler:            advanceShipmentHandler,
		getLatestStatusHandler:            getLatestStatusHandler,
		getPackageHistoryHandler:          getPackageHistoryHandler,
		getShipmentPackageStatusesHandler: getShipmentPackageStatusesHandler,
		canAdvanceShipmentHandler:         canAdvanceShipmentHandler,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/packages", s.RegisterPackage)
	api.GET("/packages/:packageId/status", s.GetLatestStatus)
	api.GET("/packages/:packageId/history", s.GetPackageHistory)
	api.POST("/packages/:packageId/missing", s.MarkPackageMissing)
	api.POST("/packages/:packageId/archive", s.ArchivePackage)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/:shipmentId/packages", s.GetShipmentPackageStatuses)
	api.POST("/shipments/:shipmentId/scan", s.ApplyScan)
	api.GET("/shipments/:shipmentId/can-advance", s.CanAdvanceShipment)
	api.POST("/shipments/:shipmentId/advance", s.AdvanceShipment)
}

// RegisterPackage handles POST /api/v1/packages - registers a new package
// from the intake manifest.
func (s *Server) RegisterPackage(ctx echo.Context) error {
	var request RegisterPackageRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	packageID := kernel.NewPackageID()
	cmd, err := commands.NewRegisterPackageCommand(packageID, actorID, request.Description)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.registerPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterPackageResponse{
		PackageID: packageID.String(),
	})
}

// GetLatestStatus handles GET /api/v1/packages/:packageId/status - resolves
// the current status of one package from its log.
func (s *Server) GetLatestStatus(ctx echo.Context) error {
	packageID, err := kernel.PackageIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetLatestStatusQuery(packageID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	latest, err := s.getLatestStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LatestStatusResponse{
		PackageID:   latest.PackageID.String(),
		Status:      latest.Status.String(),
		Description: latest.Description,
		UpdatedAt:   latest.UpdatedAt,
		UpdatedBy:   latest.UpdatedBy.String(),
	})
}

// GetPackageHistory handles GET /api/v1/packages/:packageId/history -
// returns the full status log of one package, newest first.
func (s *Server) GetPackageHistory(ctx echo.Context) error {
	packageID, err := kernel.PackageIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetPackageHistoryQuery(packageID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	history, err := s.getPackageHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(history))
	for i, entry := range history {
		response[i] = HistoryEntryResponse{
			Status:      entry.Status.String(),
			Description: entry.Description,
			CreatedAt:   entry.CreatedAt,
			CreatedBy:   entry.CreatedBy.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkPackageMissing handles POST /api/v1/packages/:packageId/missing -
// reports a package missing with a mandatory reason.
func (s *Server) MarkPackageMissing(ctx echo.Context) error {
	var request MarkMissingRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	packageID, err := kernel.PackageIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	actorID, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkPackageMissingCommand(packageID, actorID, request.Description)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markPackageMissingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ArchivePackage handles POST /api/v1/packages/:packageId/archive - hides a
// finished package from operational screens. The status log stays intact.
func (s *Server) ArchivePackage(ctx echo.Context) error {
	packageID, err := kernel.PackageIDFromString(ctx.Param("packageId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	actorID, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewArchivePackageCommand(packageID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.archivePackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateShipment handles POST /api/v1/shipments - groups packages onto a
// new transport leg.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var request CreateShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	shipmentType, err := shipment.TypeFromString(request.Type)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	packageIDs, err := packageIDsFromStrings(request.PackageIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateShipmentCommand(shipmentType, packageIDs, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	shipmentID, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{
		ShipmentID: shipmentID.String(),
	})
}

// GetShipmentPackageStatuses handles GET /api/v1/shipments/:shipmentId/packages -
// returns every member's resolved status for the scan screen.
func (s *Server) GetShipmentPackageStatuses(ctx echo.Context) error {
	shipmentID, err := kernel.ShipmentIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetShipmentPackageStatusesQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	statuses, err := s.getShipmentPackageStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]ShipmentPackageStatusResponse, len(statuses))
	for i, status := range statuses {
		response[i] = ShipmentPackageStatusResponse{
			PackageID:    status.PackageID.String(),
			Status:       status.Status.String(),
			MemberStatus: status.MemberStatus.String(),
			UpdatedAt:    status.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApplyScan handles POST /api/v1/shipments/:shipmentId/scan - validates one
// scan submission and applies the accepted subset atomically.
func (s *Server) ApplyScan(ctx echo.Context) error {
	var request ScanRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipmentID, err := kernel.ShipmentIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	actorID, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	packageStatus, err := parcel.StatusFromString(request.PackageStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	memberStatus, err := shipment.MemberStatusFromString(request.MemberStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	scannedIDs, err := packageIDsFromStrings(request.ScannedIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	sessionScannedIDs, err := packageIDsFromStrings(request.SessionScannedIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewApplyScanCommand(
		shipmentID, scannedIDs, sessionScannedIDs,
		packageStatus, memberStatus, actorID, request.Description,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.applyScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := ScanResponse{
		Accepted: make([]string, len(result.Accepted)),
		Rejected: make([]ScanRejectionResponse, len(result.Rejected)),
	}
	for i, id := range result.Accepted {
		response.Accepted[i] = id.String()
	}
	for i, rejection := range result.Rejected {
		response.Rejected[i] = ScanRejectionResponse{
			PackageID: rejection.PackageID.String(),
			Reason:    rejection.Reason.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CanAdvanceShipment handles GET /api/v1/shipments/:shipmentId/can-advance -
// read-only reconciler gate for enabling or disabling the advance button.
func (s *Server) CanAdvanceShipment(ctx echo.Context) error {
	shipmentID, err := kernel.ShipmentIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	targetStatus, err := shipment.StatusFromString(ctx.QueryParam("targetStatus"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewCanAdvanceShipmentQuery(shipmentID, targetStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	verdict, err := s.canAdvanceShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CanAdvanceResponse{
		Allowed:            verdict.Allowed,
		BlockingPackageIDs: packageIDsToStrings(verdict.BlockingPackageIDs),
	})
}

// AdvanceShipment handles POST /api/v1/shipments/:shipmentId/advance -
// advances the shipment when every member passes the reconciler gate.
func (s *Server) AdvanceShipment(ctx echo.Context) error {
	var request AdvanceShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipmentID, err := kernel.ShipmentIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	actorID, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	targetStatus, err := shipment.StatusFromString(request.TargetStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, targetStatus, actorID, request.Description)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.advanceShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	// A blocked advance is a structured verdict, not an error, so the
	// operator sees exactly which packages hold the shipment back.
	return ctx.JSON(http.StatusOK, CanAdvanceResponse{
		Allowed:            result.Allowed,
		BlockingPackageIDs: packageIDsToStrings(result.BlockingPackageIDs),
	})
}

// actorFromRequest extracts the operator id from the request headers.
func actorFromRequest(ctx echo.Context) (kernel.ActorID, error) {
	return kernel.ActorIDFromString(ctx.Request().Header.Get(actorHeader))
}

func packageIDsFromStrings(raw []string) ([]kernel.PackageID, error) {
	ids := make([]kernel.PackageID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.PackageIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func packageIDsToStrings(ids []kernel.PackageID) []string {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return raw
}

// badRequest returns a 400 with the uniform error body.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors onto HTTP statuses: unknown objects
// to 404, validation failures to 400, illegal state changes to 409, and
// everything else to a generic retryable 500.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, shipment.ErrShipmentHasNoPackages),
		errors.Is(err, parcel.ErrPackageIsArchived),
		errors.Is(err, parcel.ErrPackageIsNotArchivable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "operation failed, please retry",
		})
	}
}
