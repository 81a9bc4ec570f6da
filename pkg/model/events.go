package model

import "time"

const EventTypeReservationCreated = "reservation.created"

// ReservationCreatedEvent carries everything the confirmation email needs so
// the notifier never reads the reservation back.
type ReservationCreatedEvent struct {
	ReservationID   string    `json:"reservation_id"`
	GuestName       string    `json:"guest_name"`
	GuestEmail      string    `json:"guest_email,omitempty"`
	GuestPhone      string    `json:"guest_phone"`
	PartySize       int       `json:"party_size"`
	ReservationDate string    `json:"reservation_date"`
	StartTime       string    `json:"start_time"`
	TableNumber     int       `json:"table_number"`
	Section         string    `json:"section,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Language        string    `json:"language"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
