package service

import (
	"context"
	"errors"
	"time"

	"tablebooker/internal/bookings/allocator"
	bookingserrors "tablebooker/internal/bookings/errors"
	"tablebooker/pkg/config"
	apperrors "tablebooker/pkg/errors"
	"tablebooker/pkg/model"
)

func (s *bookingService) loadSettings(ctx context.Context) (*model.ReservationSettings, error) {
	settings, err := s.repos.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrSettingsNotFound) {
			s.cfg.Log.Error("Reservation settings missing")
		} else {
			s.cfg.Log.Error("Failed to load reservation settings", "error", err)
		}
		return nil, bookingserrors.ServiceUnavailable(err)
	}
	if !settings.Complete() {
		s.cfg.Log.Error("Reservation settings incomplete", "id", settings.ID)
		return nil, bookingserrors.ServiceUnavailable(bookingserrors.ErrSettingsNotFound)
	}
	return settings, nil
}

// checkPolicy applies the online-booking switch, the party size cap and the
// advance notice window, in that order.
func (s *bookingService) checkPolicy(settings *model.ReservationSettings, partySize int, date, clock string) *apperrors.AppError {
	if !*settings.AllowOnlineBooking {
		return bookingserrors.BookingDisabled(s.cfg.RestaurantContactPhone)
	}
	if partySize > *settings.MaxPartySize {
		return bookingserrors.PartySizeExceeded(*settings.MaxPartySize)
	}

	exact := s.cfg.AdvanceNoticeMode == config.AdvanceNoticeDateTime
	moment, err := allocator.RequestMoment(date, clock, s.location(), exact)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	hours, days := allocator.Until(s.now(), moment)
	if hours < *settings.MinAdvanceBookingHours {
		return bookingserrors.TooSoon(*settings.MinAdvanceBookingHours)
	}
	if days > *settings.MaxAdvanceBookingDays {
		return bookingserrors.TooFarAhead(*settings.MaxAdvanceBookingDays)
	}
	return nil
}

// matchOperatingHours returns the active slots of the requested weekday once
// clock falls inside one of them.
func (s *bookingService) matchOperatingHours(ctx context.Context, date, clock string) ([]model.TimeSlot, error) {
	day, err := allocator.Weekday(date)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	slots, err := s.repos.TimeSlots.FindActiveByDay(ctx, day)
	if err != nil {
		s.cfg.Log.Error("Failed to load time slots", "day_of_week", day, "error", err)
		return nil, apperrors.Internal("Failed to load operating hours", err)
	}
	if len(slots) == 0 {
		return nil, bookingserrors.NoServiceThisDay()
	}
	if _, ok := allocator.MatchSlot(slots, clock); !ok {
		return slots, bookingserrors.OutsideOperatingHours(allocator.SlotWindows(slots))
	}
	return slots, nil
}

func (s *bookingService) candidateTables(ctx context.Context, partySize int) ([]model.Table, error) {
	tables, err := s.repos.Tables.FindActiveWithCapacity(ctx, partySize)
	if err != nil {
		s.cfg.Log.Error("Failed to load tables", "party_size", partySize, "error", err)
		return nil, apperrors.Internal("Failed to load tables", err)
	}

	candidates := allocator.QualifyingTables(tables, partySize)
	if len(candidates) == 0 {
		return nil, bookingserrors.NoCapacity()
	}
	return candidates, nil
}

func (s *bookingService) location() *time.Location {
	if s.cfg.RestaurantLocation != nil {
		return s.cfg.RestaurantLocation
	}
	return time.UTC
}
