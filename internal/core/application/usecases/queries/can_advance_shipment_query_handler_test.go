package queries_test

import (
	"context"
	"testing"
	"time"

	"freightops/internal/adapters/out/postgres/parcelrepo"
	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CanAdvanceShipmentQueryHandlerTestSuite runs the read-only advance gate
// against a real database: shipment rows, join rows and the package status
// log all come from the same adapters production uses.
type CanAdvanceShipmentQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	packages  *parcelrepo.GormPackageRepository
	logs      *parcelrepo.GormPackageLogRepository
	shipments *shipmentrepo.GormShipmentRepository
	handler   queries.CanAdvanceShipmentQueryHandler
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&parcelrepo.PackageDTO{},
		&parcelrepo.PackageLogDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentPackageDTO{},
	))

	suite.packages = parcelrepo.NewGormPackageRepository(db, &mockAggregateTracker{})
	suite.logs = parcelrepo.NewGormPackageLogRepository(db)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
	suite.handler = queries.NewCanAdvanceShipmentQueryHandler(db)
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE packages, package_status_logs, shipments, shipment_packages",
	).Error)
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TestHandle_AllMembersReady_Allowed() {
	ctx := context.Background()

	p1 := suite.registerPackage()
	p2 := suite.registerPackage()
	suite.appendEntry(p1, parcel.TransferringWarehouse, suite.at(1))
	suite.appendEntry(p2, parcel.TransferringWarehouse, suite.at(2))

	shp := suite.addShipment(shipment.TypeTransferWarehouse, p1, p2)

	query, err := queries.NewCanAdvanceShipmentQuery(shp.ID(), shipment.InTransit)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(response.Allowed)
	suite.Empty(response.BlockingPackageIDs)
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TestHandle_LaggingMember_BlockedWithExactIDs() {
	ctx := context.Background()

	ready := suite.registerPackage()
	lagging := suite.registerPackage()
	suite.appendEntry(ready, parcel.TransferringWarehouse, suite.at(1))
	suite.appendEntry(lagging, parcel.Incoming, suite.at(2))

	shp := suite.addShipment(shipment.TypeTransferWarehouse, ready, lagging)

	query, err := queries.NewCanAdvanceShipmentQuery(shp.ID(), shipment.InTransit)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.False(response.Allowed)
	suite.Require().Len(response.BlockingPackageIDs, 1)
	suite.True(lagging.IsEqual(response.BlockingPackageIDs[0]))
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TestHandle_ResolutionUsesNewestEntry() {
	ctx := context.Background()

	packageID := suite.registerPackage()
	// The latest entry has moved to the pre-transit status; older entries
	// must not block the advance.
	suite.appendEntry(packageID, parcel.Incoming, suite.at(1))
	suite.appendEntry(packageID, parcel.TransferringWarehouse, suite.at(2))

	shp := suite.addShipment(shipment.TypeTransferWarehouse, packageID)

	query, err := queries.NewCanAdvanceShipmentQuery(shp.ID(), shipment.InTransit)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(response.Allowed)
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TestHandle_EmptyShipment_NotAllowed() {
	ctx := context.Background()

	shipmentID := suite.addEmptyShipmentRow()

	query, err := queries.NewCanAdvanceShipmentQuery(shipmentID, shipment.InTransit)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.False(response.Allowed)
	suite.NotNil(response.BlockingPackageIDs)
	suite.Empty(response.BlockingPackageIDs)
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TestHandle_UnknownShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	shipmentID, err := kernel.NewShipmentID(424242)
	suite.Require().NoError(err)

	query, err := queries.NewCanAdvanceShipmentQuery(shipmentID, shipment.InTransit)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	ctx := context.Background()

	var zero queries.CanAdvanceShipmentQuery
	_, err := suite.handler.Handle(ctx, zero)
	suite.Require().ErrorIs(err, queries.ErrCanAdvanceShipmentQueryIsNotConstructed)
}

// registerPackage persists a fresh package row so log appends satisfy the
// foreign key, and returns its id.
func (suite *CanAdvanceShipmentQueryHandlerTestSuite) registerPackage() kernel.PackageID {
	pkg, err := parcel.NewPackage(kernel.NewPackageID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.packages.Add(context.Background(), pkg))
	return pkg.ID()
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) appendEntry(
	packageID kernel.PackageID,
	status parcel.Status,
	createdAt time.Time,
) {
	entry, err := parcel.NewLogEntry(packageID, status, kernel.NewActorID(), "", createdAt)
	suite.Require().NoError(err)

	_, err = suite.logs.Append(context.Background(), entry)
	suite.Require().NoError(err)
}

// addShipment persists a Preparing shipment with the given members.
func (suite *CanAdvanceShipmentQueryHandlerTestSuite) addShipment(
	shipmentType shipment.Type,
	packageIDs ...kernel.PackageID,
) *shipment.Shipment {
	ctx := context.Background()

	id, err := suite.shipments.NextID(ctx)
	suite.Require().NoError(err)

	shp, err := shipment.NewShipment(id, shipmentType, packageIDs)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipments.Add(ctx, shp))
	return shp
}

// addEmptyShipmentRow inserts a shipment row with no join rows. The
// aggregate constructor refuses empty member lists, so the row goes in
// directly.
func (suite *CanAdvanceShipmentQueryHandlerTestSuite) addEmptyShipmentRow() kernel.ShipmentID {
	id, err := suite.shipments.NextID(context.Background())
	suite.Require().NoError(err)

	dto := shipmentrepo.ShipmentDTO{
		ID:     id.Value(),
		Type:   int(shipment.TypeTransferWarehouse),
		Status: int(shipment.Preparing),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *CanAdvanceShipmentQueryHandlerTestSuite) at(minutes int) time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestCanAdvanceShipmentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CanAdvanceShipmentQueryHandlerTestSuite))
}
