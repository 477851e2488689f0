package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite provides integration tests for the
// shipment and shipment log repositories using PostgreSQL containers.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	shipments *shipmentrepo.GormShipmentRepository
	logs      *shipmentrepo.GormShipmentLogRepository
	tracker   *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
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
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentPackageDTO{},
		&shipmentrepo.ShipmentLogDTO{},
	))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE shipments, shipment_packages, shipment_status_logs").Error,
	)

	suite.tracker = new(MockAggregateTracker)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
	suite.logs = shipmentrepo.NewGormShipmentLogRepository(suite.db)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestNextID_ReservesIncreasingIDs() {
	ctx := context.Background()

	first, err := suite.shipments.NextID(ctx)
	suite.Require().NoError(err)
	second, err := suite.shipments.NextID(ctx)
	suite.Require().NoError(err)

	suite.Positive(first.Value())
	suite.Greater(second.Value(), first.Value())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_PersistsShipmentWithMembers() {
	ctx := context.Background()

	shp := suite.newShipment(shipment.TypeTransferWarehouse, 2)
	suite.tracker.On("TrackAggregate", shp.ID().String(), shp).Once()

	err := suite.shipments.Add(ctx, shp)
	suite.Require().NoError(err)

	retrieved, err := suite.shipments.Get(ctx, shp.ID())
	suite.Require().NoError(err)
	suite.True(shp.ID().IsEqual(retrieved.ID()))
	suite.Equal(shipment.TypeTransferWarehouse, retrieved.Type())
	suite.Equal(shipment.Preparing, retrieved.Status())
	suite.Len(retrieved.Members(), 2)
	for _, member := range retrieved.Members() {
		suite.Equal(shipment.MemberPreparing, member.Status())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndMemberStatuses() {
	ctx := context.Background()

	shp := suite.newShipment(shipment.TypeDelivery, 2)
	suite.tracker.On("TrackAggregate", shp.ID().String(), shp).Twice()

	suite.Require().NoError(suite.shipments.Add(ctx, shp))

	for _, member := range shp.Members() {
		suite.Require().NoError(shp.SetMemberStatus(member.PackageID(), shipment.MemberInTransit))
	}
	suite.Require().NoError(shp.TransitionTo(shipment.InTransit))
	suite.Require().NoError(suite.shipments.Update(ctx, shp))

	retrieved, err := suite.shipments.Get(ctx, shp.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, retrieved.Status())
	for _, member := range retrieved.Members() {
		suite.Equal(shipment.MemberInTransit, member.Status())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	id, err := kernel.NewShipmentID(424242)
	suite.Require().NoError(err)

	retrieved, err := suite.shipments.Get(ctx, id)
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByMemberPackage_MostRecentLegWins() {
	ctx := context.Background()

	sharedPackage := kernel.NewPackageID()

	older := suite.newShipmentWithPackages(shipment.TypeTransferWarehouse, []kernel.PackageID{sharedPackage})
	newer := suite.newShipmentWithPackages(shipment.TypeDelivery, []kernel.PackageID{sharedPackage})
	suite.Require().Less(older.ID().Value(), newer.ID().Value())

	suite.tracker.On("TrackAggregate", older.ID().String(), older).Once()
	suite.tracker.On("TrackAggregate", newer.ID().String(), newer).Once()

	suite.Require().NoError(suite.shipments.Add(ctx, older))
	suite.Require().NoError(suite.shipments.Add(ctx, newer))

	retrieved, err := suite.shipments.GetByMemberPackage(ctx, sharedPackage)
	suite.Require().NoError(err)
	suite.True(newer.ID().IsEqual(retrieved.ID()))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByMemberPackage_UnknownPackage_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.shipments.GetByMemberPackage(ctx, kernel.NewPackageID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAppend_AssignsRowID() {
	ctx := context.Background()

	shipmentID := suite.registerShipment()

	entry, err := shipment.NewLogEntry(
		shipmentID, shipment.Preparing, kernel.NewActorID(), "", suite.at(0),
	)
	suite.Require().NoError(err)

	appended, err := suite.logs.Append(ctx, entry)
	suite.Require().NoError(err)
	suite.NotZero(appended.ID())
	suite.Equal(shipment.Preparing, appended.Status())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAppend_UnknownShipment_Rejected() {
	ctx := context.Background()

	// A reserved id without a shipments row must not take log entries.
	shipmentID, err := suite.shipments.NextID(ctx)
	suite.Require().NoError(err)

	entry, err := shipment.NewLogEntry(
		shipmentID, shipment.Preparing, kernel.NewActorID(), "", suite.at(0),
	)
	suite.Require().NoError(err)

	_, err = suite.logs.Append(ctx, entry)
	suite.Require().Error(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&shipmentrepo.ShipmentLogDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetLatest_TieBrokenByHigherRowID() {
	ctx := context.Background()

	shipmentID := suite.registerShipment()
	sameInstant := suite.at(1)

	first := suite.appendEntry(ctx, shipmentID, shipment.Preparing, sameInstant)
	second := suite.appendEntry(ctx, shipmentID, shipment.InTransit, sameInstant)
	suite.Less(first.ID(), second.ID())

	latest, err := suite.logs.GetLatest(ctx, shipmentID)
	suite.Require().NoError(err)
	suite.Equal(second.ID(), latest.ID())
	suite.Equal(shipment.InTransit, latest.Status())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetHistory_NewestFirst() {
	ctx := context.Background()

	shipmentID := suite.registerShipment()

	suite.appendEntry(ctx, shipmentID, shipment.Preparing, suite.at(1))
	suite.appendEntry(ctx, shipmentID, shipment.InTransit, suite.at(2))
	suite.appendEntry(ctx, shipmentID, shipment.Arrived, suite.at(3))

	history, err := suite.logs.GetHistory(ctx, shipmentID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.Equal(shipment.Arrived, history[0].Status())
	suite.Equal(shipment.InTransit, history[1].Status())
	suite.Equal(shipment.Preparing, history[2].Status())
}

// newShipment creates a Preparing shipment of the given type with freshly
// generated member package ids.
func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(
	shipmentType shipment.Type,
	memberCount int,
) *shipment.Shipment {
	packageIDs := make([]kernel.PackageID, 0, memberCount)
	for range memberCount {
		packageIDs = append(packageIDs, kernel.NewPackageID())
	}
	return suite.newShipmentWithPackages(shipmentType, packageIDs)
}

// newShipmentWithPackages creates a Preparing shipment with the given members.
func (suite *ShipmentRepositoryIntegrationTestSuite) newShipmentWithPackages(
	shipmentType shipment.Type,
	packageIDs []kernel.PackageID,
) *shipment.Shipment {
	id, err := suite.shipments.NextID(context.Background())
	suite.Require().NoError(err)

	shp, err := shipment.NewShipment(id, shipmentType, packageIDs)
	suite.Require().NoError(err)
	return shp
}

// registerShipment persists a fresh shipment row so log appends satisfy the
// foreign key, and returns its id.
func (suite *ShipmentRepositoryIntegrationTestSuite) registerShipment() kernel.ShipmentID {
	shp := suite.newShipment(shipment.TypeTransferWarehouse, 1)
	suite.tracker.On("TrackAggregate", shp.ID().String(), shp).Once()
	suite.Require().NoError(suite.shipments.Add(context.Background(), shp))
	return shp.ID()
}

func (suite *ShipmentRepositoryIntegrationTestSuite) appendEntry(
	ctx context.Context,
	shipmentID kernel.ShipmentID,
	status shipment.Status,
	createdAt time.Time,
) shipment.LogEntry {
	entry, err := shipment.NewLogEntry(shipmentID, status, kernel.NewActorID(), "", createdAt)
	suite.Require().NoError(err)

	appended, err := suite.logs.Append(ctx, entry)
	suite.Require().NoError(err)
	return appended
}

func (suite *ShipmentRepositoryIntegrationTestSuite) at(minutes int) time.Time {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
