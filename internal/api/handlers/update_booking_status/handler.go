package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TourBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-TourBooking/internal/usecase/update_booking_status"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidInput       = "Invalid status update"
	msgNotFound           = "Booking not found"
	msgForbidden          = "Only hosts and admins can change booking status"
	msgRejected           = "Booking status change was rejected"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	session := middleware.GetSession(r)

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session, bookingID))
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%s, status=%q", bookingID, req.Status)
			handlers.RespondValidationError(w, msgInvalidInput, verr.Fields, nil)

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateStatus.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%s, user_id=%s", bookingID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateStatus.ErrRejected):
			h.logger.Warn("PATCH /bookings/{id}/status - Rejected: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgRejected)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%s, status=%s", bookingID, req.Status)
	handlers.RespondMessage(w, http.StatusOK, result.Message, &UpdateStatusResponse{
		Booking: result.Booking,
		Refresh: result.Refresh,
	})
}
