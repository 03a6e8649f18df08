package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BookingDraft not-yet-submitted booking input
type BookingDraft struct {
	NumberOfPeople  int     `json:"numberOfPeople"`
	SpecialRequests string  `json:"specialRequests"`
	TotalAmount     float64 `json:"totalAmount"`
}

// BookingForm owns the draft of one booking attempt together with its field errors.
// Invariant: 1 <= numberOfPeople <= availableSpots.
type BookingForm struct {
	tour            TourSnapshot
	availableSpots  int
	numberOfPeople  int
	specialRequests string
	paymentMethod   PaymentMethod
	token           string
	errors          ValidationErrors
}

// NewBookingForm mounts a form with numberOfPeople = 1.
// token is the client submission token sent as the idempotency key.
func NewBookingForm(tour TourSnapshot, availability Availability, token string) (*BookingForm, error) {
	if !availability.CanBook() {
		return nil, ErrTourUnavailable
	}

	return &BookingForm{
		tour:           tour,
		availableSpots: availability.AvailableSpots,
		numberOfPeople: MinNumberOfPeople,
		paymentMethod:  DefaultPaymentMethod,
		token:          token,
		errors:         ValidationErrors{},
	}, nil
}

// SetNumberOfPeople clamps n into [1, availableSpots], stores it and re-validates the field
func (f *BookingForm) SetNumberOfPeople(n int) {
	if n < MinNumberOfPeople {
		n = MinNumberOfPeople
	}
	if n > f.availableSpots {
		n = f.availableSpots
	}

	f.numberOfPeople = n
	f.validateNumberOfPeople()
}

func (f *BookingForm) Increment() {
	if f.CanIncrement() {
		f.SetNumberOfPeople(f.numberOfPeople + 1)
	}
}

func (f *BookingForm) Decrement() {
	if f.CanDecrement() {
		f.SetNumberOfPeople(f.numberOfPeople - 1)
	}
}

func (f *BookingForm) CanIncrement() bool {
	return f.numberOfPeople < f.availableSpots
}

func (f *BookingForm) CanDecrement() bool {
	return f.numberOfPeople > MinNumberOfPeople
}

// SetSpecialRequests stores text verbatim and re-validates the field
func (f *BookingForm) SetSpecialRequests(text string) {
	f.specialRequests = text
	f.validateSpecialRequests()
}

// SetPaymentMethod empty value keeps the default
func (f *BookingForm) SetPaymentMethod(method PaymentMethod) {
	if method == "" {
		return
	}
	f.paymentMethod = method
}

// Validate re-runs every field rule and reports whether the form is valid
func (f *BookingForm) Validate() bool {
	f.validateNumberOfPeople()
	f.validateSpecialRequests()
	return f.errors.Empty()
}

func (f *BookingForm) validateNumberOfPeople() {
	switch {
	case f.numberOfPeople < MinNumberOfPeople:
		f.errors.Set(FieldNumberOfPeople, "At least 1 person is required")
	case f.numberOfPeople > f.availableSpots:
		f.errors.Set(FieldNumberOfPeople, fmt.Sprintf("Only %d spots available", f.availableSpots))
	default:
		f.errors.Clear(FieldNumberOfPeople)
	}
}

func (f *BookingForm) validateSpecialRequests() {
	if utf8.RuneCountInString(f.specialRequests) > MaxSpecialRequestsLength {
		f.errors.Set(FieldSpecialRequests, fmt.Sprintf("Maximum %d characters allowed", MaxSpecialRequestsLength))
		return
	}
	f.errors.Clear(FieldSpecialRequests)
}

// MergeServerErrors merges gateway field errors into the form errors
func (f *BookingForm) MergeServerErrors(errs map[string][]string) {
	f.errors.MergeServer(errs)
}

// FirstError first offending field in form order
func (f *BookingForm) FirstError() (field, message string, ok bool) {
	return f.errors.First(FieldNumberOfPeople, FieldSpecialRequests)
}

// TotalAmount price * numberOfPeople, recomputed on every call
func (f *BookingForm) TotalAmount() float64 {
	return f.tour.Price * float64(f.numberOfPeople)
}

func (f *BookingForm) Draft() BookingDraft {
	return BookingDraft{
		NumberOfPeople:  f.numberOfPeople,
		SpecialRequests: f.specialRequests,
		TotalAmount:     f.TotalAmount(),
	}
}

// BookingRequest builds the gateway payload from the current draft
func (f *BookingForm) BookingRequest() CreateBookingRequest {
	req := CreateBookingRequest{
		TourID:         f.tour.ID,
		NumberOfPeople: f.numberOfPeople,
		TotalAmount:    f.TotalAmount(),
		PaymentMethod:  f.paymentMethod,
	}
	if trimmed := strings.TrimSpace(f.specialRequests); trimmed != "" {
		req.SpecialRequests = &f.specialRequests
	}
	return req
}

func (f *BookingForm) Tour() TourSnapshot           { return f.tour }
func (f *BookingForm) AvailableSpots() int          { return f.availableSpots }
func (f *BookingForm) NumberOfPeople() int          { return f.numberOfPeople }
func (f *BookingForm) SpecialRequests() string      { return f.specialRequests }
func (f *BookingForm) PaymentMethod() PaymentMethod { return f.paymentMethod }
func (f *BookingForm) Token() string                { return f.token }

// Errors returns a copy of the current field errors
func (f *BookingForm) Errors() ValidationErrors {
	return f.errors.Clone()
}
