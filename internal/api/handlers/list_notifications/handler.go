package list_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/api/middleware"
)

type Handler struct {
	service NotificationService
}

func NewHandler(service NotificationService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/notifications
// Каждое уведомление отдается один раз
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Drain(middleware.GetSession(r).ID))
}
