package cmd

import (
	"log/slog"
	"strings"

	httpadapter "freightops/internal/adapters/in/http"
	"freightops/internal/adapters/out/kafka"
	"freightops/internal/adapters/out/postgres"
	"freightops/internal/adapters/out/postgres/outboxrepo"
	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/ports"
	"freightops/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateRegisterPackageCommandHandler() commands.RegisterPackageCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPackageCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkPackageMissingCommandHandler() commands.MarkPackageMissingCommandHandler {
	var f commands.MissingUoWFactory = FuncMissingUoWFactory(func() commands.MissingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPackageMissingCommandHandler(f)
}

func (c *CompositionRoot) CreateArchivePackageCommandHandler() commands.ArchivePackageCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchivePackageCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyScanCommandHandler() commands.ApplyScanCommandHandler {
	var f commands.ScanUoWFactory = FuncScanUoWFactory(func() commands.ScanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyScanCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetLatestStatusQueryHandler() queries.GetLatestStatusQueryHandler {
	return queries.NewGetLatestStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackageHistoryQueryHandler() queries.GetPackageHistoryQueryHandler {
	return queries.NewGetPackageHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentPackageStatusesQueryHandler() queries.GetShipmentPackageStatusesQueryHandler {
	return queries.NewGetShipmentPackageStatusesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCanAdvanceShipmentQueryHandler() queries.CanAdvanceShipmentQueryHandler {
	return queries.NewCanAdvanceShipmentQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every command and query handler into the REST
// adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateRegisterPackageCommandHandler(),
		c.CreateMarkPackageMissingCommandHandler(),
		c.CreateArchivePackageCommandHandler(),
		c.CreateCreateShipmentCommandHandler(),
		c.CreateApplyScanCommandHandler(),
		c.CreateAdvanceShipmentCommandHandler(),
		c.CreateGetLatestStatusQueryHandler(),
		c.CreateGetPackageHistoryQueryHandler(),
		c.CreateGetShipmentPackageStatusesQueryHandler(),
		c.CreateCanAdvanceShipmentQueryHandler(),
	)
}

// CreateOutboxRepository returns an outbox repository bound to the main
// connection, for the dispatch job running outside any business transaction.
func (c *CompositionRoot) CreateOutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(c.gormDB)
}

// CreateEventPublisher connects the Kafka publisher for outbox dispatch.
func (c *CompositionRoot) CreateEventPublisher(logger *slog.Logger) (*kafka.Publisher, error) {
	brokers := strings.Split(c.config.KafkaHost, ",")
	return kafka.NewPublisher(
		brokers,
		c.config.KafkaPackageStatusTopic,
		c.config.KafkaShipmentStatusTopic,
		logger,
	)
}

// CreateJobManager wires the background jobs: outbox dispatch and the
// status cache audit.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) (*jobs.JobManager, error) {
	publisher, err := c.CreateEventPublisher(logger)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(c.CreateOutboxRepository(), publisher, c.gormDB, logger), nil
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncMissingUoWFactory func() commands.MissingUoW

func (f FuncMissingUoWFactory) Create() commands.MissingUoW {
	return f()
}

type FuncScanUoWFactory func() commands.ScanUoW

func (f FuncScanUoWFactory) Create() commands.ScanUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
