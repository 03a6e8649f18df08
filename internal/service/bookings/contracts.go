package bookings

import (
	"context"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

// GatewayClient интерфейс клиента бэкенд API
type GatewayClient interface {
	GetBooking(ctx context.Context, session domain.Session, bookingID string) (*domain.Booking, error)
	GetMyBookings(ctx context.Context, session domain.Session, filter domain.BookingsFilter) (*gateway.BookingList, error)
	GetTourReviewsWithGracefulDegradation(ctx context.Context, tourID string) ([]domain.Review, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
