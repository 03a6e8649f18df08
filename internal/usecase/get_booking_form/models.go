package get_booking_form

import "github.com/m04kA/SMC-TourBooking/internal/domain"

// Request модель запроса на открытие формы бронирования
type Request struct {
	Session domain.Session
	TourID  string
}

// PreviewRequest изменения черновика, которые нужно применить к свежей форме
// Action: "increment" или "decrement" применяется после NumberOfPeople
type PreviewRequest struct {
	Request
	Token           string
	NumberOfPeople  *int
	SpecialRequests *string
	Action          string
}

// Preview actions
const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
)

// Response либо форма, либо блокирующее уведомление
type Response struct {
	Tour         domain.TourSnapshot
	Availability domain.Availability
	Form         *domain.BookingForm       // nil, если бронирование невозможно
	Notice       *domain.UnavailableNotice // nil, если форма доступна
}
