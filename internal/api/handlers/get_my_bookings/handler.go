package get_my_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "Invalid query parameters"
	msgInvalidInput = "Invalid status filter"
	msgForbidden    = "Access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r)
	query := r.URL.Query()

	req := &models.GetMyBookingsRequest{Session: session}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	var err error
	if req.Page, err = atoiOrZero(query.Get("page")); err != nil {
		h.logger.Warn("GET /bookings/my - Invalid page: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	if req.Limit, err = atoiOrZero(query.Get("limit")); err != nil {
		h.logger.Warn("GET /bookings/my - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.service.GetMyBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/my - Invalid input: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/my - Access denied: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/my - Failed to get bookings: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/my - Bookings retrieved: user_id=%s, count=%d", session.UserID, len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func atoiOrZero(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
