package main

import (
	bookinghandler "reservio/internal/bookings/handler"
	bookingrepo "reservio/internal/bookings/repository"
	bookingservice "reservio/internal/bookings/service"
	"reservio/internal/bookings/validator"
	catalogrepo "reservio/internal/catalog/repository"
	catalogservice "reservio/internal/catalog/service"
	"reservio/internal/notifications"
	"reservio/internal/payments/gateway"
	paymenthandler "reservio/internal/payments/handler"
	paymentrepo "reservio/internal/payments/repository"
	paymentservice "reservio/internal/payments/service"
	"reservio/pkg/app"
	"reservio/pkg/config"
	"reservio/pkg/contracts"
	"reservio/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservio bookings service")

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	notifier := notifications.NewKafkaNotifier(producer, ServiceName, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, notifier)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, notifier notifications.Notifier) []contracts.Handler {
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewMongoSlotLockRepository(cfg)
	availability := bookingservice.NewAvailabilityChecker(bookingRepo, cfg)

	catalog := catalogservice.NewCatalog(
		catalogrepo.NewMongoServiceRepository(cfg),
		catalogrepo.NewMongoWindowRepository(cfg),
		cfg,
	)

	paymentSvc := paymentservice.NewPaymentService(
		paymentrepo.NewMongoPaymentRepository(cfg),
		bookingRepo,
		gateway.NewSimulator(cfg.GatewaySuccessRate),
		notifier,
		cfg,
	)

	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		availability,
		catalog,
		paymentSvc,
		validator.NewBookingValidator(cfg.Log),
		notifier,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookinghandler.NewBookingHandler(bookingSvc, availability, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentSvc, cfg.Log),
	}
}
