package model

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusSeated    = "seated"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusNoShow    = "no_show"

	ReservationSourceWebsite = "website"
)

// BlockingReservationStatuses are the statuses that occupy a table.
var BlockingReservationStatuses = []string{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusSeated,
}

type Reservation struct {
	ID                       string    `json:"id" bson:"_id"`
	TableID                  string    `json:"table_id,omitempty" bson:"table_id,omitempty"`
	CustomerID               *string   `json:"customer_id" bson:"customer_id"`
	GuestName                string    `json:"guest_name" bson:"guest_name"`
	GuestEmail               string    `json:"guest_email,omitempty" bson:"guest_email,omitempty"`
	GuestPhone               string    `json:"guest_phone" bson:"guest_phone"`
	PartySize                int       `json:"party_size" bson:"party_size"`
	ReservationDate          string    `json:"reservation_date" bson:"reservation_date"`
	StartTime                string    `json:"start_time" bson:"start_time"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes,omitempty" bson:"estimated_duration_minutes,omitempty"`
	Status                   string    `json:"status" bson:"status"`
	Source                   string    `json:"source" bson:"source"`
	SpecialRequests          string    `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	Language                 string    `json:"language,omitempty" bson:"language,omitempty"`
	CreatedAt                time.Time `json:"created_at" bson:"created_at"`
}

// IsBlocking reports whether the reservation still holds its table.
func (r *Reservation) IsBlocking() bool {
	for _, s := range BlockingReservationStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
