package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"freightops/cmd"
	"freightops/internal/adapters/out/postgres/outboxrepo"
	"freightops/internal/adapters/out/postgres/parcelrepo"
	"freightops/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := mustOpenDatabase(configs)
	root := cmd.NewCompositionRoot(configs, db)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager, err := root.CreateJobManager(logger)
	if err != nil {
		log.Fatalf("Error creating job manager: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                goDotEnvVariable("KAFKA_HOST"),
		KafkaPackageStatusTopic:  goDotEnvVariable("KAFKA_PACKAGE_STATUS_TOPIC"),
		KafkaShipmentStatusTopic: goDotEnvVariable("KAFKA_SHIPMENT_STATUS_TOPIC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&parcelrepo.PackageDTO{},
		&parcelrepo.PackageLogDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentPackageDTO{},
		&shipmentrepo.ShipmentLogDTO{},
		&outboxrepo.OutboxEventDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
