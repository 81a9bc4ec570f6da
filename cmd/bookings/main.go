package main

import (
	"context"

	"tablebooker/internal/bookings/handler"
	"tablebooker/internal/bookings/repository"
	"tablebooker/internal/bookings/service"
	"tablebooker/internal/bookings/validator"
	confirmationsrepo "tablebooker/internal/confirmations/repository"
	confirmations "tablebooker/internal/confirmations/service"
	"tablebooker/internal/confirmations/publisher"
	"tablebooker/internal/confirmations/templates"
	"tablebooker/pkg/app"
	"tablebooker/pkg/config"
	"tablebooker/pkg/kafka"
	kafka_config "tablebooker/pkg/kafka/config"
	kafka_middleware "tablebooker/pkg/kafka/middleware"
	"tablebooker/pkg/mailer"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg)

	eventPublisher := initPublisher(cfg, serverApp)
	bookingService := initServices(cfg, eventPublisher)

	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, eventPublisher service.EventPublisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	repos := repository.NewMongoRepositories(cfg)
	bookingService := service.NewBookingService(
		repos,
		bookingValidator,
		eventPublisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initPublisher sends confirmations through Kafka when enabled, otherwise
// through an in-process dispatcher.
func initPublisher(cfg *config.Config, serverApp *app.Application) service.EventPublisher {
	if cfg.KafkaEnabled {
		kafkaCfg, err := kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kafkaCfg.LogConfiguration(cfg.Log)

		producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaReservationsTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		if kafkaCfg.EnableMiddleware {
			metrics := kafka_middleware.NewMetrics()
			producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
			producer.Use(metrics.ProducerMiddleware())
			serverApp.OnShutdown(app.ShutdownHook{Name: "kafka-metrics", Stop: func(context.Context) error {
				metrics.Log(cfg.Log)
				return nil
			}})
		}
		serverApp.OnShutdown(app.ShutdownHook{Name: "kafka-producer", Stop: func(context.Context) error {
			return producer.Close()
		}})

		cfg.Log.Info("Reservation events published to Kafka", "topic", cfg.KafkaReservationsTopic)
		return publisher.NewKafkaPublisher(producer, cfg.Log)
	}

	contact := templates.DefaultContact
	contact.Phone = cfg.RestaurantContactPhone
	sender := confirmations.NewConfirmationSender(
		mailer.New(mailer.Config{
			APIKey:    cfg.MailerSendAPIKey,
			FromName:  cfg.MailFromName,
			FromEmail: cfg.MailFromEmail,
		}, cfg.Log),
		confirmationsrepo.NewMongoConfirmationRepository(cfg),
		contact,
		cfg.Log,
	)
	dispatcher := confirmations.NewDispatcher(sender, confirmations.DispatcherConfig{
		QueueSize:   cfg.NotifyQueueSize,
		MaxAttempts: cfg.NotifyMaxAttempts,
		RetryDelay:  cfg.NotifyRetryDelay,
	}, cfg.Log)
	serverApp.OnShutdown(app.ShutdownHook{Name: "confirmation-dispatcher", Stop: dispatcher.Stop})

	cfg.Log.Info("Confirmations delivered in-process", "queue_size", cfg.NotifyQueueSize)
	return dispatcher
}
