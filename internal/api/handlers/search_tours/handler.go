package search_tours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
	searchTours "github.com/m04kA/SMC-TourBooking/internal/usecase/search_tours"
)

const (
	msgInvalidFilter = "Invalid search parameters"
	msgSuperseded    = "Superseded by a newer search"
)

type Handler struct {
	useCase SearchToursUseCase
	logger  Logger
}

func NewHandler(useCase SearchToursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tours - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &searchTours.Request{
		Session: middleware.GetSession(r),
		Filter:  filter,
	})
	if err != nil {
		switch {
		case errors.Is(err, searchTours.ErrInvalidInput):
			h.logger.Warn("GET /tours - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case r.Context().Err() != nil:
			h.logger.Info("GET /tours - Client went away: %v", err)

		default:
			h.logger.Error("GET /tours - Failed to search tours: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Ответ на устаревший запрос сессии клиент должен отбросить
	if result.Stale {
		h.logger.Info("GET /tours - Stale response discarded: request_id=%s", result.RequestID)
		handlers.RespondConflict(w, msgSuperseded)
		return
	}

	h.logger.Info("GET /tours - Found %d tours: request_id=%s", len(result.Items), result.RequestID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
