package update_booking_status

import (
	"context"

	updateStatus "github.com/m04kA/SMC-TourBooking/internal/usecase/update_booking_status"
)

type UpdateStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
