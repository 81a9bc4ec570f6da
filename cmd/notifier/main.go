package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	confirmationshandler "tablebooker/internal/confirmations/handler"
	"tablebooker/internal/confirmations/repository"
	"tablebooker/internal/confirmations/service"
	"tablebooker/internal/confirmations/templates"
	"tablebooker/pkg/config"
	"tablebooker/pkg/kafka"
	kafka_config "tablebooker/pkg/kafka/config"
	kafka_middleware "tablebooker/pkg/kafka/middleware"
	"tablebooker/pkg/mailer"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	contact := templates.DefaultContact
	contact.Phone = cfg.RestaurantContactPhone
	sender := service.NewConfirmationSender(
		mailer.New(mailer.Config{
			APIKey:    cfg.MailerSendAPIKey,
			FromName:  cfg.MailFromName,
			FromEmail: cfg.MailFromEmail,
		}, cfg.Log),
		repository.NewMongoConfirmationRepository(cfg),
		contact,
		cfg.Log,
	)
	h := confirmationshandler.NewReservationCreatedHandler(sender, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.KafkaReservationsTopic,
		cfg.KafkaNotifierGroup,
		cfg.KafkaReservationsDLQTopic,
		h.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting Notifier service",
		"topic", cfg.KafkaReservationsTopic,
		"group", cfg.KafkaNotifierGroup,
		"dlq_topic", cfg.KafkaReservationsDLQTopic,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		metrics.Log(cfg.Log)
	}
	cfg.Log.Info("Notifier stopped")
}
