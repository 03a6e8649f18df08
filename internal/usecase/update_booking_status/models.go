package update_booking_status

import "github.com/m04kA/SMC-TourBooking/internal/domain"

// Request модель запроса на изменение статуса
type Request struct {
	Session   domain.Session
	BookingID string
	Status    domain.BookingStatus
}

// Response итог изменения статуса
// Refresh - клиент должен перезагрузить список бронирований
type Response struct {
	Booking *domain.Booking
	Message string
	Refresh bool
}

const (
	MsgStatusUpdated = "Booking status updated"
	MsgInvalidStatus = "Invalid status"
	MsgUpdateFailed  = "Failed to update booking status"
)
