package create_review

import (
	"context"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// GatewayClient интерфейс клиента бэкенд API
type GatewayClient interface {
	GetBooking(ctx context.Context, session domain.Session, bookingID string) (*domain.Booking, error)
	CreateReview(ctx context.Context, session domain.Session, req domain.CreateReviewRequest) (*gateway.Result[domain.Review], error)
}

// Notifier канал уведомлений (toast) для сессии пользователя
type Notifier interface {
	Success(sessionID, message string)
	Error(sessionID, message string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
