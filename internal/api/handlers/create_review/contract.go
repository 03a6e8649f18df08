package create_review

import (
	"context"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	createReview "github.com/m04kA/SMC-TourBooking/internal/usecase/create_review"
)

type CreateReviewUseCase interface {
	CheckEligibility(ctx context.Context, req *createReview.EligibilityRequest) (*domain.ReviewEligibility, error)
	Execute(ctx context.Context, req *createReview.Request) (*createReview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
