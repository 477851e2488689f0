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

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetShipmentPackageStatusesQueryHandlerTestSuite exercises the grouped
// resolution query end to end: the join rows come from a real shipment, the
// statuses from the append-only log.
type GetShipmentPackageStatusesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	packages  *parcelrepo.GormPackageRepository
	logs      *parcelrepo.GormPackageLogRepository
	shipments *shipmentrepo.GormShipmentRepository
	handler   queries.GetShipmentPackageStatusesQueryHandler
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) SetupSuite() {
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
	suite.handler = queries.NewGetShipmentPackageStatusesQueryHandler(db)
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE packages, package_status_logs, shipments, shipment_packages",
	).Error)
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) TestHandle_ResolvesEachMemberFromLog() {
	ctx := context.Background()

	p1 := suite.registerPackage()
	p2 := suite.registerPackage()

	// p1 has moved on; only its newest entry may surface.
	suite.appendEntry(p1, parcel.Incoming, suite.at(1))
	suite.appendEntry(p1, parcel.InWarehouse, suite.at(2))
	suite.appendEntry(p2, parcel.Incoming, suite.at(3))

	shp := suite.addShipment(shipment.TypeTransferWarehouse, p1, p2)

	query, err := queries.NewGetShipmentPackageStatusesQuery(shp.ID())
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)

	byPackage := make(map[kernel.PackageID]queries.GetShipmentPackageStatusesQueryResponse)
	for _, response := range responses {
		byPackage[response.PackageID] = response
	}

	suite.Equal(parcel.InWarehouse, byPackage[p1].Status)
	suite.True(byPackage[p1].UpdatedAt.Equal(suite.at(2)))
	suite.Equal(shipment.MemberPreparing, byPackage[p1].MemberStatus)

	suite.Equal(parcel.Incoming, byPackage[p2].Status)
	suite.True(byPackage[p2].UpdatedAt.Equal(suite.at(3)))
	suite.Equal(shipment.MemberPreparing, byPackage[p2].MemberStatus)
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) TestHandle_TieBrokenByHigherRowID() {
	ctx := context.Background()

	packageID := suite.registerPackage()
	sameInstant := suite.at(1)

	suite.appendEntry(packageID, parcel.Incoming, sameInstant)
	suite.appendEntry(packageID, parcel.InWarehouse, sameInstant)

	shp := suite.addShipment(shipment.TypeTransferWarehouse, packageID)

	query, err := queries.NewGetShipmentPackageStatusesQuery(shp.ID())
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Equal(parcel.InWarehouse, responses[0].Status)
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) TestHandle_EmptyShipment_ReturnsEmptySlice() {
	ctx := context.Background()

	shipmentID := suite.addEmptyShipmentRow()

	query, err := queries.NewGetShipmentPackageStatusesQuery(shipmentID)
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.NotNil(responses)
	suite.Empty(responses)
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	ctx := context.Background()

	var zero queries.GetShipmentPackageStatusesQuery
	_, err := suite.handler.Handle(ctx, zero)
	suite.Require().ErrorIs(err, queries.ErrGetShipmentPackageStatusesQueryIsNotConstructed)
}

// registerPackage persists a fresh package row so log appends satisfy the
// foreign key, and returns its id.
func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) registerPackage() kernel.PackageID {
	pkg, err := parcel.NewPackage(kernel.NewPackageID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.packages.Add(context.Background(), pkg))
	return pkg.ID()
}

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) appendEntry(
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
func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) addShipment(
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
func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) addEmptyShipmentRow() kernel.ShipmentID {
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

func (suite *GetShipmentPackageStatusesQueryHandlerTestSuite) at(minutes int) time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestGetShipmentPackageStatusesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentPackageStatusesQueryHandlerTestSuite))
}
