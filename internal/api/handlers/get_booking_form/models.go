package get_booking_form

import (
	"github.com/m04kA/SMC-TourBooking/internal/domain"
	getBookingForm "github.com/m04kA/SMC-TourBooking/internal/usecase/get_booking_form"
)

// PreviewRequest HTTP request model
type PreviewRequest struct {
	Token           string  `json:"token"`
	NumberOfPeople  *int    `json:"numberOfPeople,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	Action          string  `json:"action,omitempty"` // "increment" | "decrement"
}

// FormView состояние формы для отрисовки клиентом
type FormView struct {
	Token           string                  `json:"token"`
	NumberOfPeople  int                     `json:"numberOfPeople"`
	SpecialRequests string                  `json:"specialRequests"`
	PaymentMethod   domain.PaymentMethod    `json:"paymentMethod"`
	TotalAmount     float64                 `json:"totalAmount"`
	AvailableSpots  int                     `json:"availableSpots"`
	CanIncrement    bool                    `json:"canIncrement"`
	CanDecrement    bool                    `json:"canDecrement"`
	MaxSpecialChars int                     `json:"maxSpecialRequestsLength"`
	Errors          domain.ValidationErrors `json:"errors"`
}

// FormPageResponse HTTP response model: форма или блокирующее уведомление
type FormPageResponse struct {
	Tour         domain.TourSnapshot       `json:"tour"`
	Availability domain.Availability       `json:"availability"`
	Form         *FormView                 `json:"form,omitempty"`
	Notice       *domain.UnavailableNotice `json:"notice,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PreviewRequest) ToUseCaseRequest(base getBookingForm.Request) *getBookingForm.PreviewRequest {
	return &getBookingForm.PreviewRequest{
		Request:         base,
		Token:           r.Token,
		NumberOfPeople:  r.NumberOfPeople,
		SpecialRequests: r.SpecialRequests,
		Action:          r.Action,
	}
}

// NewFormView снимок формы
func NewFormView(form *domain.BookingForm) *FormView {
	if form == nil {
		return nil
	}
	return &FormView{
		Token:           form.Token(),
		NumberOfPeople:  form.NumberOfPeople(),
		SpecialRequests: form.SpecialRequests(),
		PaymentMethod:   form.PaymentMethod(),
		TotalAmount:     form.TotalAmount(),
		AvailableSpots:  form.AvailableSpots(),
		CanIncrement:    form.CanIncrement(),
		CanDecrement:    form.CanDecrement(),
		MaxSpecialChars: domain.MaxSpecialRequestsLength,
		Errors:          form.Errors(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingForm.Response) *FormPageResponse {
	return &FormPageResponse{
		Tour:         resp.Tour,
		Availability: resp.Availability,
		Form:         NewFormView(resp.Form),
		Notice:       resp.Notice,
	}
}
