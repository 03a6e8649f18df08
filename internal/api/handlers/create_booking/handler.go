package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TourBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TourBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidInput       = "Invalid booking request"
	msgTourNotFound       = "Tour not found"
	msgTourUnavailable    = "This tour is not available for booking"
	msgInProgress         = "Your booking is already being submitted"
	msgAlreadySubmitted   = "This booking form has already been submitted"
	msgTokenMismatch      = "This booking form was issued for another booking. Please reopen the form."
	msgPleaseFixErrors    = "Please fix the highlighted fields"
	msgBackendUnavailable = "Failed to create booking. Please try again."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tours/{tourId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]
	session := middleware.GetSession(r)

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tours/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session, tourID, r.Header.Get(HeaderIdempotencyKey)))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /tours/{id}/bookings - Invalid input: tour_id=%s, error=%v", tourID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrTourNotFound):
			h.logger.Warn("POST /tours/{id}/bookings - Tour not found: tour_id=%s", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, createBooking.ErrTourUnavailable):
			h.logger.Warn("POST /tours/{id}/bookings - Tour unavailable: tour_id=%s, error=%v", tourID, err)
			handlers.RespondConflict(w, msgTourUnavailable)

		case errors.Is(err, createBooking.ErrSubmissionInProgress):
			h.logger.Warn("POST /tours/{id}/bookings - Submission in progress: tour_id=%s, user_id=%s", tourID, session.UserID)
			handlers.RespondConflict(w, msgInProgress)

		case errors.Is(err, createBooking.ErrAlreadySubmitted):
			h.logger.Warn("POST /tours/{id}/bookings - Already submitted: tour_id=%s, user_id=%s", tourID, session.UserID)
			handlers.RespondConflict(w, msgAlreadySubmitted)

		case errors.Is(err, createBooking.ErrTokenMismatch):
			h.logger.Warn("POST /tours/{id}/bookings - Token mismatch: tour_id=%s, user_id=%s", tourID, session.UserID)
			handlers.RespondConflict(w, msgTokenMismatch)

		default:
			h.logger.Error("POST /tours/{id}/bookings - Failed to create booking: tour_id=%s, user_id=%s, error=%v",
				tourID, session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	switch {
	case result.State == domain.SubmissionSucceeded:
		status := http.StatusCreated
		if result.Replayed {
			status = http.StatusOK
		}
		h.logger.Info("POST /tours/{id}/bookings - Booking created: tour_id=%s, user_id=%s, replayed=%t",
			tourID, session.UserID, result.Replayed)
		handlers.RespondMessage(w, status, result.Message, response)

	case result.State != domain.SubmissionFailed:
		// Форма не прошла проверку: бэкенд не вызывался
		handlers.RespondValidationError(w, msgPleaseFixErrors, result.Errors, response)

	case result.Rejected:
		handlers.RespondValidationError(w, result.Message, result.Errors, response)

	default:
		message := result.Message
		if message == "" {
			message = msgBackendUnavailable
		}
		handlers.RespondFailure(w, http.StatusBadGateway, message, response)
	}
}
