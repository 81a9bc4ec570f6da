package model

// ReservationSettings is the single policy document. Fields are pointers so a
// partially written document can be told apart from explicit zero values.
type ReservationSettings struct {
	ID                     string   `json:"id" bson:"_id"`
	AllowOnlineBooking     *bool    `json:"allow_online_booking" bson:"allow_online_booking"`
	MaxPartySize           *int     `json:"max_party_size" bson:"max_party_size"`
	MinAdvanceBookingHours *float64 `json:"min_advance_booking_hours" bson:"min_advance_booking_hours"`
	MaxAdvanceBookingDays  *float64 `json:"max_advance_booking_days" bson:"max_advance_booking_days"`
}

const ReservationSettingsID = "default"

func (s *ReservationSettings) Complete() bool {
	return s != nil &&
		s.AllowOnlineBooking != nil &&
		s.MaxPartySize != nil &&
		s.MinAdvanceBookingHours != nil &&
		s.MaxAdvanceBookingDays != nil
}
