package model

const (
	LanguageEnglish = "en"
	LanguageDutch   = "nl"
	LanguageSpanish = "es"
	LanguageGerman  = "de"
)

// BookingRequest is the public booking payload. It is validated once at the
// HTTP boundary and never persisted as-is.
type BookingRequest struct {
	GuestName       string `json:"guest_name" validate:"required,min=2,max=255"`
	GuestEmail      string `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone      string `json:"guest_phone" validate:"required,min=6,max=20"`
	PartySize       int    `json:"party_size" validate:"required,min=1,max=50"`
	ReservationDate string `json:"reservation_date" validate:"required,calendar_date"`
	StartTime       string `json:"start_time" validate:"required,clock_time"`
	SpecialRequests string `json:"special_requests,omitempty" validate:"max=1000"`
	Language        string `json:"language,omitempty" validate:"omitempty,oneof=en nl es de"`
}

type BookingConfirmation struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Reservation ReservationSummary `json:"reservation"`
}

type ReservationSummary struct {
	ID          string  `json:"id"`
	GuestName   string  `json:"guest_name"`
	PartySize   int     `json:"party_size"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	TableNumber int     `json:"table_number"`
	Section     *string `json:"section"`
}

type AvailabilityQuery struct {
	Date            string
	Time            string
	PartySize       int
	DurationMinutes int
}

type SlotWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SuggestedTable struct {
	ID          string `json:"id"`
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	SectionID   string `json:"section_id,omitempty"`
}

type AvailabilityResult struct {
	Available       bool            `json:"available"`
	Reason          string          `json:"reason,omitempty"`
	AvailableSlots  []SlotWindow    `json:"available_slots,omitempty"`
	AvailableTables int             `json:"available_tables,omitempty"`
	SuggestedTable  *SuggestedTable `json:"suggested_table,omitempty"`
	SuggestedTimes  []string        `json:"suggested_times,omitempty"`
}
