package publisher

import (
	"context"
	"fmt"

	"tablebooker/pkg/kafka"
	"tablebooker/pkg/logger"
	"tablebooker/pkg/middleware"
	"tablebooker/pkg/model"
)

const (
	EventSource   = "bookings"
	SchemaVersion = "1"
)

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher emits reservation.created events keyed by reservation id so
// every event of one reservation lands on the same partition.
type KafkaPublisher struct {
	producer messagePublisher
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, log: log}
}

func (p *KafkaPublisher) PublishReservationCreated(ctx context.Context, e *model.ReservationCreatedEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(e.ReservationID).
		WithValue(e).
		WithEventType(model.EventTypeReservationCreated).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(EventSource).
		Build()
	if err != nil {
		return fmt.Errorf("build reservation event: %w", err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish reservation event: %w", err)
	}
	return nil
}
