package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/infra/storage/submission"
	"github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// GatewayClient интерфейс клиента бэкенд API
type GatewayClient interface {
	GetSingleTour(ctx context.Context, session domain.Session, tourID string) (*domain.TourSnapshot, error)
	CreateBooking(ctx context.Context, session domain.Session, req domain.CreateBookingRequest, idempotencyKey string) (*gateway.Result[domain.Booking], error)
}

// SubmissionStore хранилище ключей идемпотентности
type SubmissionStore interface {
	Begin(ctx context.Context, rec submission.Record) (*submission.Record, bool, error)
	Complete(ctx context.Context, key string, state domain.SubmissionState, bookingID, message *string) error
}

// Notifier канал уведомлений (toast) для сессии пользователя
type Notifier interface {
	Success(sessionID, message string)
	Error(sessionID, message string)
}

// Navigator выполняет переход клиента на другую страницу
type Navigator interface {
	Redirect(ctx context.Context, redirect Redirect)
}

// MetricsCollector считает итоги отправок
type MetricsCollector interface {
	IncSubmission(state string)
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

type nopMetrics struct{}

func (nopMetrics) IncSubmission(string) {}
