package get_booking_form

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

// GatewayClient интерфейс клиента бэкенд API
type GatewayClient interface {
	GetSingleTour(ctx context.Context, session domain.Session, tourID string) (*domain.TourSnapshot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
