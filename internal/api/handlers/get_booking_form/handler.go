package get_booking_form

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	getBookingForm "github.com/m04kA/SMC-TourBooking/internal/usecase/get_booking_form"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidInput       = "Invalid booking form request"
	msgTourNotFound       = "Tour not found"
)

type Handler struct {
	useCase BookingFormUseCase
	logger  Logger
}

func NewHandler(useCase BookingFormUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/booking-form
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]

	result, err := h.useCase.Execute(r.Context(), &getBookingForm.Request{
		Session: middleware.GetSession(r),
		TourID:  tourID,
	})
	if err != nil {
		h.respondError(w, "GET /tours/{id}/booking-form", tourID, err)
		return
	}

	if result.Notice != nil {
		h.logger.Info("GET /tours/{id}/booking-form - Tour unavailable: tour_id=%s, reason=%s", tourID, result.Notice.Reason)
	} else {
		h.logger.Info("GET /tours/{id}/booking-form - Form ready: tour_id=%s, spots=%d", tourID, result.Availability.AvailableSpots)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandlePreview POST /api/v1/tours/{tourId}/booking-form/preview
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]

	var req PreviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tours/{id}/booking-form/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Preview(r.Context(), req.ToUseCaseRequest(getBookingForm.Request{
		Session: middleware.GetSession(r),
		TourID:  tourID,
	}))
	if err != nil {
		h.respondError(w, "POST /tours/{id}/booking-form/preview", tourID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route, tourID string, err error) {
	switch {
	case errors.Is(err, getBookingForm.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: tour_id=%s, error=%v", route, tourID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, getBookingForm.ErrTourNotFound):
		h.logger.Warn("%s - Tour not found: tour_id=%s", route, tourID)
		handlers.RespondNotFound(w, msgTourNotFound)

	default:
		h.logger.Error("%s - Failed to load booking form: tour_id=%s, error=%v", route, tourID, err)
		handlers.RespondInternalError(w)
	}
}
