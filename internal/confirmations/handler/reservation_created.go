package handler

import (
	"context"
	"fmt"

	"tablebooker/internal/confirmations/service"
	"tablebooker/pkg/kafka"
	"tablebooker/pkg/logger"
	"tablebooker/pkg/model"
)

type ReservationCreatedHandler struct {
	deliverer service.Deliverer
	log       *logger.Logger
}

func NewReservationCreatedHandler(deliverer service.Deliverer, log *logger.Logger) *ReservationCreatedHandler {
	return &ReservationCreatedHandler{deliverer: deliverer, log: log}
}

// Handle is a kafka.MessageHandler. Temporary mail failures come back as
// transient errors so the consumer retries; anything else goes to the DLQ.
func (h *ReservationCreatedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != "" && eventType != model.EventTypeReservationCreated {
		h.log.Warn("Skipping unexpected event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var event model.ReservationCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}
	if event.ReservationID == "" {
		return kafka.NewPermanentError("reservation event without reservation_id", kafka.ErrInvalidMessage)
	}

	err := h.deliverer.Deliver(ctx, &event)
	if err == nil {
		return nil
	}
	if service.IsTemporary(err) {
		return kafka.NewTransientError("deliver confirmation", err)
	}
	return kafka.NewPermanentError(fmt.Sprintf("deliver confirmation for %s", event.ReservationID), err)
}
