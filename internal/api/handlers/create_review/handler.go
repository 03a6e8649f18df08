package create_review

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	createReview "github.com/m04kA/SMC-TourBooking/internal/usecase/create_review"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidBookingID   = "Invalid booking ID"
	msgPleaseFixErrors    = "Please fix the highlighted fields"
)

type Handler struct {
	useCase CreateReviewUseCase
	logger  Logger
}

func NewHandler(useCase CreateReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleEligibility GET /api/v1/bookings/{bookingId}/review-eligibility
func (h *Handler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	eligibility, err := h.useCase.CheckEligibility(r.Context(), &createReview.EligibilityRequest{
		Session:   middleware.GetSession(r),
		BookingID: bookingID,
	})
	if err != nil {
		h.respondError(w, "GET /bookings/{id}/review-eligibility", bookingID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NewEligibilityResponse(*eligibility))
}

// Handle POST /api/v1/bookings/{bookingId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	session := middleware.GetSession(r)

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session, bookingID))
	if err != nil {
		h.respondError(w, "POST /bookings/{id}/reviews", bookingID, err)
		return
	}

	switch {
	case !result.Eligibility.Eligible():
		h.logger.Warn("POST /bookings/{id}/reviews - Not eligible: booking_id=%s, reason=%s", bookingID, result.Eligibility.Reason)
		handlers.RespondFailure(w, http.StatusConflict, result.Message, NewEligibilityResponse(result.Eligibility))

	case !result.Created:
		message := result.Message
		if message == "" {
			message = msgPleaseFixErrors
		}
		handlers.RespondValidationError(w, message, result.Errors, nil)

	default:
		h.logger.Info("POST /bookings/{id}/reviews - Review created: booking_id=%s, user_id=%s", bookingID, session.UserID)
		handlers.RespondMessage(w, http.StatusCreated, result.Message, &ReviewResponse{
			Review:   result.Review,
			Redirect: result.Redirect,
		})
	}
}

func (h *Handler) respondError(w http.ResponseWriter, route, bookingID string, err error) {
	if errors.Is(err, createReview.ErrInvalidInput) {
		h.logger.Warn("%s - Invalid input: booking_id=%q", route, bookingID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	h.logger.Error("%s - Failed: booking_id=%s, error=%v", route, bookingID, err)
	handlers.RespondInternalError(w)
}
