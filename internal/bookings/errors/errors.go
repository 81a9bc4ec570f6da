package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	apperrors "tablebooker/pkg/errors"
	"tablebooker/pkg/model"
)

var (
	ErrNotFound = errors.New("reservation not found")

	ErrSettingsNotFound = errors.New("reservation settings not found")

	ErrLockHeld = errors.New("reservation lock held by another request")

	ErrLockLost = errors.New("reservation lock expired and was taken by another request")
)

const (
	CodeServiceUnavailable    = "SERVICE_UNAVAILABLE"
	CodeBookingDisabled       = "BOOKING_DISABLED"
	CodePartySizeExceeded     = "PARTY_SIZE_EXCEEDED"
	CodeTooSoon               = "TOO_SOON"
	CodeTooFarAhead           = "TOO_FAR_AHEAD"
	CodeNoServiceThisDay      = "NO_SERVICE_THIS_DAY"
	CodeOutsideOperatingHours = "OUTSIDE_OPERATING_HOURS"
	CodeNoCapacity            = "NO_CAPACITY"
	CodeNoAvailability        = "NO_AVAILABILITY"
	CodePersistence           = "PERSISTENCE_ERROR"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Validation(fields []FieldError) *apperrors.AppError {
	return apperrors.Validation("Validation failed", map[string]any{"details": fields})
}

func InvalidFormat() *apperrors.AppError {
	return apperrors.InvalidInput("Invalid request format")
}

func ServiceUnavailable(err error) *apperrors.AppError {
	return apperrors.Wrap(err, CodeServiceUnavailable, "Reservation system is currently unavailable", http.StatusServiceUnavailable)
}

func BookingDisabled(contactPhone string) *apperrors.AppError {
	return apperrors.New(CodeBookingDisabled, "Online booking is currently disabled", http.StatusForbidden).
		WithDescription("Please call us to make a reservation: " + contactPhone)
}

func PartySizeExceeded(max int) *apperrors.AppError {
	return apperrors.New(CodePartySizeExceeded, "Party size exceeds maximum", http.StatusBadRequest).
		WithDescription(fmt.Sprintf("Maximum party size is %d. For larger groups, please contact us directly.", max))
}

func TooSoon(minHours float64) *apperrors.AppError {
	return apperrors.New(CodeTooSoon, "Booking too soon", http.StatusBadRequest).
		WithDescription(fmt.Sprintf("Reservations must be made at least %s hours in advance.", formatNumber(minHours)))
}

func TooFarAhead(maxDays float64) *apperrors.AppError {
	return apperrors.New(CodeTooFarAhead, "Booking too far in advance", http.StatusBadRequest).
		WithDescription(fmt.Sprintf("Reservations can only be made up to %s days in advance.", formatNumber(maxDays)))
}

func NoServiceThisDay() *apperrors.AppError {
	return apperrors.New(CodeNoServiceThisDay, "No reservations available", http.StatusBadRequest).
		WithDescription("We are not accepting reservations for this day.")
}

func OutsideOperatingHours(slots []model.SlotWindow) *apperrors.AppError {
	return apperrors.New(CodeOutsideOperatingHours, "Invalid time", http.StatusBadRequest).
		WithDescription("The requested time is outside our operating hours.").
		WithDetail("available_slots", slots)
}

func NoCapacity() *apperrors.AppError {
	return apperrors.New(CodeNoCapacity, "No tables available", http.StatusBadRequest).
		WithDescription("We do not have tables available that can accommodate your party size.")
}

func NoAvailability() *apperrors.AppError {
	return apperrors.New(CodeNoAvailability, "No availability", http.StatusConflict).
		WithDescription("Unfortunately, we are fully booked for the requested time. Please try a different time or contact us directly.")
}

func Persistence(err error) *apperrors.AppError {
	return apperrors.Wrap(err, CodePersistence, "Failed to create reservation. Please try again or contact us directly.", http.StatusInternalServerError)
}

// formatNumber prints whole numbers without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
