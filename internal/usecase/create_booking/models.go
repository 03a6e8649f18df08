package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

// Request модель запроса на отправку формы бронирования
type Request struct {
	Session         domain.Session
	TourID          string
	Token           string // токен формы, выданный при её открытии; ключ идемпотентности
	NumberOfPeople  int
	SpecialRequests string
	PaymentMethod   domain.PaymentMethod
}

// Redirect переход после отправки
// Delay - пауза, чтобы клиент успел показать уведомление до перехода
type Redirect struct {
	Path    string
	Replace bool // заменить запись в истории: вернуться к форме кнопкой "назад" нельзя
	Delay   time.Duration
}

// Response итог отправки
type Response struct {
	State    domain.SubmissionState
	Booking  *domain.Booking
	Draft    domain.BookingDraft
	Errors   domain.ValidationErrors
	Message  string
	Redirect *Redirect
	Rejected bool // логический отказ бэкенда (success:false), а не сбой транспорта
	Replayed bool // повтор уже успешной отправки, бэкенд не вызывался
}

// Config параметры конвейера отправки
type Config struct {
	RedirectDelay time.Duration
	// ProfileErrorSignatures подстроки ошибки, при которых выполняется переход к списку бронирований
	ProfileErrorSignatures []string
}

// Сообщения уведомлений
const (
	MsgBookingCreated     = "Booking created successfully!"
	MsgGenericFailure     = "Failed to create booking. Please try again."
	MsgProfileMismatch    = "Something went wrong. Please check your bookings."
	MsgDefaultRejection   = "Booking request was rejected"
	DefaultRedirectDelay  = 1500 * time.Millisecond
	DefaultProfileMessage = "invalid profile provided"
)
