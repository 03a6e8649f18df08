package update_booking_status

import (
	"strings"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-TourBooking/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Booking *domain.Booking `json:"booking,omitempty"`
	Refresh bool            `json:"refresh"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(session domain.Session, bookingID string) *updateStatus.Request {
	return &updateStatus.Request{
		Session:   session,
		BookingID: bookingID,
		Status:    domain.BookingStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
	}
}
