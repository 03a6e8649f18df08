package search_tours

import (
	"context"

	searchTours "github.com/m04kA/SMC-TourBooking/internal/usecase/search_tours"
)

type SearchToursUseCase interface {
	Execute(ctx context.Context, req *searchTours.Request) (*searchTours.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
