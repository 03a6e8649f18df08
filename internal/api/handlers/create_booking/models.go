package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TourBooking/internal/usecase/create_booking"
)

// HeaderIdempotencyKey токен формы; имеет приоритет над token в теле
const HeaderIdempotencyKey = "Idempotency-Key"

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Token           string               `json:"token,omitempty"`
	NumberOfPeople  int                  `json:"numberOfPeople"`
	SpecialRequests string               `json:"specialRequests,omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod,omitempty"`
}

// RedirectResponse переход, который должен выполнить клиент
type RedirectResponse struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace"`
	DelayMs int64  `json:"delayMs"`
}

// SubmissionResponse HTTP response model
type SubmissionResponse struct {
	State    domain.SubmissionState `json:"state"`
	Booking  *domain.Booking        `json:"booking,omitempty"`
	Draft    domain.BookingDraft    `json:"draft"`
	Redirect *RedirectResponse      `json:"redirect,omitempty"`
	Replayed bool                   `json:"replayed,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(session domain.Session, tourID, idempotencyKey string) *createBooking.Request {
	token := strings.TrimSpace(idempotencyKey)
	if token == "" {
		token = strings.TrimSpace(r.Token)
	}

	return &createBooking.Request{
		Session:         session,
		TourID:          tourID,
		Token:           token,
		NumberOfPeople:  r.NumberOfPeople,
		SpecialRequests: r.SpecialRequests,
		PaymentMethod:   r.PaymentMethod,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *SubmissionResponse {
	out := &SubmissionResponse{
		State:    resp.State,
		Booking:  resp.Booking,
		Draft:    resp.Draft,
		Replayed: resp.Replayed,
	}
	if resp.Redirect != nil {
		out.Redirect = &RedirectResponse{
			Path:    resp.Redirect.Path,
			Replace: resp.Redirect.Replace,
			DelayMs: resp.Redirect.Delay.Milliseconds(),
		}
	}
	return out
}
