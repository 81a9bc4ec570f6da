package service

import (
	"context"
	"sync"

	"tablebooker/pkg/mailer"
	"tablebooker/pkg/model"
)

type mockMailer struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, email mailer.Email) (string, error)
	sent     []mailer.Email
}

func (m *mockMailer) Send(ctx context.Context, email mailer.Email) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	if m.sendFunc != nil {
		return m.sendFunc(ctx, email)
	}
	return "msg-1", nil
}

type mockConfirmationRepository struct {
	mu         sync.Mutex
	createFunc func(ctx context.Context, c *model.ReservationConfirmation) error
	existsFunc func(ctx context.Context, reservationID, confirmationType string) (bool, error)
	created    []*model.ReservationConfirmation
}

func (m *mockConfirmationRepository) Create(ctx context.Context, c *model.ReservationConfirmation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, c)
	return nil
}

func (m *mockConfirmationRepository) Exists(ctx context.Context, reservationID, confirmationType string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, reservationID, confirmationType)
	}
	return false, nil
}

type mockDeliverer struct {
	mu          sync.Mutex
	deliverFunc func(ctx context.Context, e *model.ReservationCreatedEvent) error
	calls       int
	delivered   []string
}

func (m *mockDeliverer) Deliver(ctx context.Context, e *model.ReservationCreatedEvent) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	var err error
	if m.deliverFunc != nil {
		err = m.deliverFunc(ctx, e)
	}
	if err == nil {
		m.mu.Lock()
		m.delivered = append(m.delivered, e.ReservationID)
		m.mu.Unlock()
	}
	return err
}

func (m *mockDeliverer) snapshot() (int, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, append([]string(nil), m.delivered...)
}

func testEvent() *model.ReservationCreatedEvent {
	return &model.ReservationCreatedEvent{
		ReservationID:   "3f2a9c1e-1111-2222-3333-444455556666",
		GuestName:       "Jan de Vries",
		GuestEmail:      "jan@example.com",
		GuestPhone:      "+31612345678",
		PartySize:       4,
		ReservationDate: "2030-06-03",
		StartTime:       "19:30",
		TableNumber:     7,
		Section:         "Terrace",
		Language:        "nl",
		Status:          model.ReservationStatusPending,
	}
}
