package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebooker/internal/confirmations/repository"
	"tablebooker/internal/confirmations/templates"
	"tablebooker/pkg/logger"
	"tablebooker/pkg/mailer"
	"tablebooker/pkg/model"

	"github.com/google/uuid"
)

// ConfirmationSender emails the guest about a new reservation and records
// the delivery. It is safe to call more than once per reservation: an
// already recorded confirmation is not sent again.
type ConfirmationSender struct {
	mailer  mailer.Sender
	repo    repository.ConfirmationRepository
	contact templates.Contact
	log     *logger.Logger
	now     func() time.Time
}

func NewConfirmationSender(m mailer.Sender, repo repository.ConfirmationRepository, contact templates.Contact, log *logger.Logger) *ConfirmationSender {
	return &ConfirmationSender{
		mailer:  m,
		repo:    repo,
		contact: contact,
		log:     log,
		now:     time.Now,
	}
}

// IsTemporary reports whether a Deliver error is worth retrying.
func IsTemporary(err error) bool {
	return errors.Is(err, mailer.ErrTemporary) || errors.Is(err, context.DeadlineExceeded)
}

func (s *ConfirmationSender) Deliver(ctx context.Context, e *model.ReservationCreatedEvent) error {
	if e.GuestEmail == "" {
		s.log.Debug("No guest email, skipping confirmation", "reservation_id", e.ReservationID)
		return nil
	}

	sent, err := s.repo.Exists(ctx, e.ReservationID, model.ConfirmationTypeEmail)
	if err != nil {
		s.log.Warn("Confirmation lookup failed, sending anyway", "reservation_id", e.ReservationID, "error", err)
	} else if sent {
		s.log.Info("Confirmation already sent", "reservation_id", e.ReservationID)
		return nil
	}

	rendered, err := templates.RenderConfirmation(e, s.contact)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	messageID, err := s.mailer.Send(ctx, mailer.Email{
		ToEmail: e.GuestEmail,
		ToName:  e.GuestName,
		Subject: rendered.Subject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	})
	if err != nil {
		return fmt.Errorf("send confirmation for %s: %w", e.ReservationID, err)
	}

	record := &model.ReservationConfirmation{
		ID:               uuid.NewString(),
		ReservationID:    e.ReservationID,
		ConfirmationType: model.ConfirmationTypeEmail,
		Recipient:        e.GuestEmail,
		MessageID:        messageID,
		SentAt:           s.now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// The guest has the email; a missing log row must not trigger a resend.
		s.log.Error("Failed to record confirmation", "reservation_id", e.ReservationID, "error", err)
		return nil
	}

	s.log.Info("Confirmation email sent",
		"reservation_id", e.ReservationID,
		"language", e.Language,
		"message_id", messageID,
	)
	return nil
}
