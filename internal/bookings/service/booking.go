package service

import (
	"context"
	"errors"
	"time"

	"tablebooker/internal/bookings/allocator"
	bookingserrors "tablebooker/internal/bookings/errors"
	"tablebooker/internal/bookings/repository"
	"tablebooker/internal/bookings/validator"
	"tablebooker/pkg/config"
	apperrors "tablebooker/pkg/errors"
	"tablebooker/pkg/model"
	"tablebooker/pkg/sanitizer"

	"github.com/google/uuid"
)

const bookingReceivedMessage = "Your reservation has been received! We will confirm it shortly."

type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error)
	CheckAvailability(ctx context.Context, query model.AvailabilityQuery) (*model.AvailabilityResult, error)
}

// EventPublisher hands a committed reservation to the confirmation pipeline.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event *model.ReservationCreatedEvent) error
}

type Option func(*bookingService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *bookingService) { s.now = now }
}

type bookingService struct {
	repos     *repository.Repositories
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repos *repository.Repositories,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	s := &bookingService{
		repos:     repos,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error) {
	s.applyDefaults(req)
	s.sanitize(req)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkPolicy(settings, req.PartySize, req.ReservationDate, req.StartTime); err != nil {
		s.cfg.Log.Info("Booking rejected by policy",
			"code", err.Code,
			"reservation_date", req.ReservationDate,
			"party_size", req.PartySize,
		)
		return nil, err
	}

	if _, err := s.matchOperatingHours(ctx, req.ReservationDate, req.StartTime); err != nil {
		return nil, err
	}

	candidates, err := s.candidateTables(ctx, req.PartySize)
	if err != nil {
		return nil, err
	}

	duration := s.cfg.BookingDurationMin
	requested, err := allocator.NewInterval(req.ReservationDate, req.StartTime, duration)
	if err != nil {
		return nil, bookingserrors.Validation([]bookingserrors.FieldError{{Field: "start_time", Message: err.Error()}})
	}

	existing, err := s.repos.Reservations.FindBlocking(ctx, req.ReservationDate, tableIDs(candidates))
	if err != nil {
		s.cfg.Log.Error("Failed to load existing reservations", "reservation_date", req.ReservationDate, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	free := allocator.FreeTables(candidates, existing, requested)
	if len(free) == 0 {
		return nil, bookingserrors.NoAvailability()
	}

	startTime, _ := allocator.NormalizeClock(req.StartTime)
	reservation := &model.Reservation{
		ID:                       uuid.NewString(),
		CustomerID:               s.linkCustomer(ctx, req),
		GuestName:                req.GuestName,
		GuestEmail:               req.GuestEmail,
		GuestPhone:               req.GuestPhone,
		PartySize:                req.PartySize,
		ReservationDate:          req.ReservationDate,
		StartTime:                startTime,
		EstimatedDurationMinutes: duration,
		Status:                   model.ReservationStatusPending,
		Source:                   model.ReservationSourceWebsite,
		SpecialRequests:          req.SpecialRequests,
		Language:                 req.Language,
		CreatedAt:                s.now().UTC().Truncate(time.Millisecond),
	}

	table, err := s.reserve(ctx, free, reservation, requested)
	if err != nil {
		return nil, err
	}

	section := s.sectionName(ctx, table.SectionID)

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"table_id", table.ID,
		"table_number", table.TableNumber,
		"reservation_date", reservation.ReservationDate,
		"start_time", reservation.StartTime,
		"party_size", reservation.PartySize,
	)

	s.publishCreated(ctx, reservation, table, section)

	return &model.BookingConfirmation{
		Success: true,
		Message: bookingReceivedMessage,
		Reservation: model.ReservationSummary{
			ID:          reservation.ID,
			GuestName:   reservation.GuestName,
			PartySize:   reservation.PartySize,
			Date:        reservation.ReservationDate,
			Time:        allocator.TrimClock(reservation.StartTime),
			Status:      reservation.Status,
			TableNumber: table.TableNumber,
			Section:     section,
		},
	}, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(req *model.BookingRequest) {
	if req.Language == "" {
		req.Language = model.LanguageEnglish
	}
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.GuestName = sanitizer.NormalizeName(req.GuestName)
	req.GuestEmail = sanitizer.NormalizeEmail(req.GuestEmail)
	req.GuestPhone = sanitizer.TrimAndNormalize(req.GuestPhone)
	req.SpecialRequests = sanitizer.NormalizeFreeText(req.SpecialRequests)
}

func (s *bookingService) validate(req *model.BookingRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return bookingserrors.Validation(verrs)
		}
		return bookingserrors.Validation([]bookingserrors.FieldError{{Field: "body", Message: err.Error()}})
	}
	return nil
}

// linkCustomer attaches an existing customer by email, or by phone when no
// email was given. Lookup failures never fail the booking.
func (s *bookingService) linkCustomer(ctx context.Context, req *model.BookingRequest) *string {
	var (
		id  string
		err error
	)
	switch {
	case req.GuestEmail != "":
		id, err = s.repos.Customers.FindIDByEmail(ctx, req.GuestEmail)
	case req.GuestPhone != "":
		phones := []string{req.GuestPhone}
		if normalized := sanitizer.NormalizePhone(req.GuestPhone); normalized != "" && normalized != req.GuestPhone {
			phones = append(phones, normalized)
		}
		id, err = s.repos.Customers.FindIDByPhone(ctx, phones...)
	default:
		return nil
	}

	if err != nil {
		if !errors.Is(err, bookingserrors.ErrNotFound) {
			s.cfg.Log.Warn("Customer lookup failed, continuing without customer link", "error", err)
		}
		return nil
	}
	return &id
}

func (s *bookingService) sectionName(ctx context.Context, sectionID string) *string {
	if sectionID == "" {
		return nil
	}
	section, err := s.repos.Sections.FindByID(ctx, sectionID)
	if err != nil {
		if !errors.Is(err, bookingserrors.ErrNotFound) {
			s.cfg.Log.Warn("Failed to load floor section", "section_id", sectionID, "error", err)
		}
		return nil
	}
	return &section.Name
}

func (s *bookingService) publishCreated(ctx context.Context, r *model.Reservation, table *model.Table, section *string) {
	if s.publisher == nil {
		return
	}

	event := &model.ReservationCreatedEvent{
		ReservationID:   r.ID,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		PartySize:       r.PartySize,
		ReservationDate: r.ReservationDate,
		StartTime:       allocator.TrimClock(r.StartTime),
		TableNumber:     table.TableNumber,
		SpecialRequests: r.SpecialRequests,
		Language:        r.Language,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
	}
	if section != nil {
		event.Section = *section
	}

	if err := s.publisher.PublishReservationCreated(context.WithoutCancel(ctx), event); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation.created, confirmation will not be sent",
			"reservation_id", r.ID,
			"error", err,
		)
	}
}

func tableIDs(tables []model.Table) []string {
	ids := make([]string, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.ID)
	}
	return ids
}
