package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"fulfillment/cmd"
	adapterhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/natsbus"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/ticketrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/nats-io/nats.go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPaymentExpiry = 15 * time.Minute

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	natsConn, err := nats.Connect(configs.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS at %s: %v", configs.NatsURL, err)
	}
	defer natsConn.Close()

	publisher := natsbus.NewPublisher(natsConn, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := app.CreateJobManager(paymentExpiry(configs))
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		NatsURL:              goDotEnvVariable("NATS_URL"),
		PaymentExpiryMinutes: goDotEnvVariable("PAYMENT_EXPIRY_MINUTES"),
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

func paymentExpiry(configs cmd.Config) time.Duration {
	if configs.PaymentExpiryMinutes == "" {
		return defaultPaymentExpiry
	}
	minutes, err := strconv.Atoi(configs.PaymentExpiryMinutes)
	if err != nil || minutes <= 0 {
		log.Fatalf("Invalid PAYMENT_EXPIRY_MINUTES value: %s", configs.PaymentExpiryMinutes)
	}
	return time.Duration(minutes) * time.Minute
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &ticketrepo.TicketDTO{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := adapterhttp.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateRejectOrderCommandHandler(),
		app.CreateStartOrderItemCommandHandler(),
		app.CreateCompleteOrderItemCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateMarkDeliveredCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateAssignRiderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateTrackOrdersQueryHandler(),
		app.CreateListOrdersByStatusQueryHandler(),
		app.CreateListActiveTicketsQueryHandler(),
		app.DeliveryZones(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
