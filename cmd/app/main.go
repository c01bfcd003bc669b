package main

import (
	"fmt"
	"os"

	"fulfillment/cmd"
	adapterhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := openDatabase(configs)
	publisher := openPublisher(configs)

	app := cmd.NewCompositionRoot(configs, db, publisher)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		StockServiceURL:     goDotEnvVariable("STOCK_SERVICE_URL"),
		StockServiceTimeout: goDotEnvVariable("STOCK_SERVICE_TIMEOUT"),
		AmqpURL:             goDotEnvVariable("AMQP_URL"),
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &auditrepo.EntryDTO{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// openPublisher connects the audit feed when AMQP_URL is set; otherwise the
// engine runs with a no-op publisher and the database alone holds the trail.
func openPublisher(configs cmd.Config) ports.AuditPublisher {
	if configs.AmqpURL == "" {
		return ports.NopAuditPublisher{}
	}

	publisher, err := rabbitmq.NewPublisher(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to message broker: %v", err)
	}
	return publisher
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := adapterhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreatePickByScanCommandHandler(),
		app.CreateConfirmPackCommandHandler(),
		app.CreateConfirmShipCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
