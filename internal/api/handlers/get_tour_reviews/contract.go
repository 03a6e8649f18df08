package get_tour_reviews

import (
	"context"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

type ReviewService interface {
	GetTourReviews(ctx context.Context, tourID string) (*domain.ReviewSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
