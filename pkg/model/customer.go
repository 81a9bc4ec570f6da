package model

import "time"

type Customer struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type ReservationConfirmation struct {
	ID               string    `json:"id" bson:"_id"`
	ReservationID    string    `json:"reservation_id" bson:"reservation_id"`
	ConfirmationType string    `json:"confirmation_type" bson:"confirmation_type"`
	Recipient        string    `json:"recipient" bson:"recipient"`
	MessageID        string    `json:"message_id,omitempty" bson:"message_id,omitempty"`
	SentAt           time.Time `json:"sent_at" bson:"sent_at"`
}

const ConfirmationTypeEmail = "email"
