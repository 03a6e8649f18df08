package get_tour_reviews

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/service/bookings"
)

const (
	msgInvalidTourID = "Invalid tour ID"
	msgTourNotFound  = "Tour not found"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]

	summary, err := h.service.GetTourReviews(r.Context(), tourID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTourID)

		case errors.Is(err, bookings.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/reviews - Tour not found: tour_id=%s", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		default:
			h.logger.Error("GET /tours/{id}/reviews - Failed to get reviews: tour_id=%s, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
