package service

import (
	"context"
	"fmt"
	"strconv"

	"tablebooker/internal/bookings/allocator"
	bookingserrors "tablebooker/internal/bookings/errors"
	apperrors "tablebooker/pkg/errors"
	"tablebooker/pkg/model"
)

const MinAvailabilityDurationMin = 15

// CheckAvailability answers whether a booking would succeed right now without
// writing anything. Policy and scheduling rejections are reported as
// available=false with a reason rather than as errors.
func (s *bookingService) CheckAvailability(ctx context.Context, q model.AvailabilityQuery) (*model.AvailabilityResult, error) {
	if q.DurationMinutes == 0 {
		q.DurationMinutes = s.cfg.BookingDurationMin
	}
	if err := validateAvailabilityQuery(q); err != nil {
		return nil, err
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if rejection := s.checkPolicy(settings, q.PartySize, q.Date, q.Time); rejection != nil {
		if rejection.Code == apperrors.CodeInvalidInput {
			return nil, rejection
		}
		return &model.AvailabilityResult{Reason: policyReason(rejection.Code, settings)}, nil
	}

	slots, err := s.matchOperatingHours(ctx, q.Date, q.Time)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		switch appErr.Code {
		case bookingserrors.CodeNoServiceThisDay:
			return &model.AvailabilityResult{Reason: "No reservations available for this day."}, nil
		case bookingserrors.CodeOutsideOperatingHours:
			return &model.AvailabilityResult{
				Reason:         "Requested time is outside operating hours.",
				AvailableSlots: allocator.SlotWindows(slots),
			}, nil
		}
		return nil, err
	}

	candidates, err := s.candidateTables(ctx, q.PartySize)
	if err != nil {
		if apperrors.AsAppError(err).Code == bookingserrors.CodeNoCapacity {
			return &model.AvailabilityResult{Reason: "No tables available that can accommodate your party size."}, nil
		}
		return nil, err
	}

	requested, err := allocator.NewInterval(q.Date, q.Time, q.DurationMinutes)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	existing, err := s.repos.Reservations.FindBlocking(ctx, q.Date, tableIDs(candidates))
	if err != nil {
		s.cfg.Log.Error("Failed to load existing reservations", "reservation_date", q.Date, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	free := allocator.FreeTables(candidates, existing, requested)
	if len(free) == 0 {
		return &model.AvailabilityResult{
			Reason:         "No tables available at the requested time.",
			SuggestedTimes: allocator.Alternatives(q.Date, q.Time, q.DurationMinutes, slots, candidates, existing),
		}, nil
	}

	best := free[0]
	return &model.AvailabilityResult{
		Available:       true,
		AvailableTables: len(free),
		SuggestedTable: &model.SuggestedTable{
			ID:          best.ID,
			TableNumber: best.TableNumber,
			Capacity:    best.Capacity,
			SectionID:   best.SectionID,
		},
	}, nil
}

func validateAvailabilityQuery(q model.AvailabilityQuery) error {
	if len(q.Date) != len(allocator.DateLayout) {
		return apperrors.InvalidInput("Invalid date")
	}
	if _, err := allocator.ParseDate(q.Date); err != nil {
		return apperrors.InvalidInput("Invalid date")
	}
	if len(q.Time) != len(allocator.ShortClock) {
		return apperrors.InvalidInput("Invalid time")
	}
	if _, err := allocator.NormalizeClock(q.Time); err != nil {
		return apperrors.InvalidInput("Invalid time")
	}
	if q.PartySize < 1 {
		return apperrors.InvalidInput("Invalid party_size")
	}
	if q.DurationMinutes < MinAvailabilityDurationMin {
		return apperrors.InvalidInput("Invalid duration")
	}
	return nil
}

func policyReason(code string, settings *model.ReservationSettings) string {
	switch code {
	case bookingserrors.CodeBookingDisabled:
		return "Online booking is currently disabled. Please call to make a reservation."
	case bookingserrors.CodePartySizeExceeded:
		return fmt.Sprintf("Party size exceeds maximum of %d. Please call for large groups.", *settings.MaxPartySize)
	case bookingserrors.CodeTooSoon:
		return fmt.Sprintf("Reservations must be made at least %s hours in advance.", formatNumber(*settings.MinAdvanceBookingHours))
	case bookingserrors.CodeTooFarAhead:
		return fmt.Sprintf("Reservations can only be made up to %s days in advance.", formatNumber(*settings.MaxAdvanceBookingDays))
	}
	return "Reservations are not available for the requested time."
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
