package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// GatewayClient интерфейс клиента бэкенд API
type GatewayClient interface {
	UpdateBookingStatus(ctx context.Context, session domain.Session, bookingID string, status domain.BookingStatus) (*gateway.Result[domain.Booking], error)
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
