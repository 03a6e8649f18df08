package get_booking_form

import (
	"context"

	getBookingForm "github.com/m04kA/SMC-TourBooking/internal/usecase/get_booking_form"
)

type BookingFormUseCase interface {
	Execute(ctx context.Context, req *getBookingForm.Request) (*getBookingForm.Response, error)
	Preview(ctx context.Context, req *getBookingForm.PreviewRequest) (*getBookingForm.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
