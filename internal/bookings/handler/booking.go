package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	bookingserrors "tablebooker/internal/bookings/errors"
	"tablebooker/internal/bookings/service"
	apperrors "tablebooker/pkg/errors"
	httputil "tablebooker/pkg/http"
	"tablebooker/pkg/logger"
	"tablebooker/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	BookingPath      = "/api/public/booking"
	AvailabilityPath = "/api/reservations/availability"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(BookingPath, h.Create)
	router.GET(AvailabilityPath, h.Availability)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, decodeError(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	confirmation, err := h.service.Book(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, confirmation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, err := availabilityQuery(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), query)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

// decodeError maps a body decoding failure to the response the caller sees.
// A field of the wrong JSON type is a validation problem; anything else means
// the body was not usable JSON at all.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return bookingserrors.Validation([]bookingserrors.FieldError{{
			Field:   typeErr.Field,
			Message: typeErr.Field + " must be a " + typeErr.Type.String(),
		}})
	}
	return bookingserrors.InvalidFormat()
}

func availabilityQuery(r *http.Request) (model.AvailabilityQuery, error) {
	values := r.URL.Query()
	date := strings.TrimSpace(values.Get("date"))
	clock := strings.TrimSpace(values.Get("time"))
	party := strings.TrimSpace(values.Get("party_size"))
	if date == "" || clock == "" || party == "" {
		return model.AvailabilityQuery{}, apperrors.InvalidInput("Missing required parameters: date, time, party_size")
	}

	partySize, err := strconv.Atoi(party)
	if err != nil {
		return model.AvailabilityQuery{}, apperrors.InvalidInput("Invalid party_size")
	}

	duration, err := httputil.QueryInt(r, "duration", 0)
	if err != nil {
		return model.AvailabilityQuery{}, apperrors.InvalidInput("Invalid duration")
	}

	return model.AvailabilityQuery{
		Date:            date,
		Time:            clock,
		PartySize:       partySize,
		DurationMinutes: duration,
	}, nil
}
