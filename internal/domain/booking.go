package domain

import "time"

// BookingStatus represents the status of a booking as the gateway reports it
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// UpdatableStatuses statuses a host or admin may set
var UpdatableStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsUpdatable returns true if the status may be set through a status update
func (s BookingStatus) IsUpdatable() bool {
	for _, allowed := range UpdatableStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// PaymentMethod opaque payment option forwarded to the gateway
type PaymentMethod string

// PaymentStatus as reported by the gateway
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Booking represents a booking returned by the gateway
type Booking struct {
	ID              string        `json:"id"`
	TourID          string        `json:"tourId"`
	UserID          string        `json:"userId"`
	NumberOfPeople  int           `json:"numberOfPeople"`
	TotalAmount     float64       `json:"totalAmount"`
	SpecialRequests *string       `json:"specialRequests,omitempty"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus,omitempty"`
	IsReviewed      bool          `json:"isReviewed"`
	PaymentURL      *string       `json:"paymentUrl,omitempty"`

	Tour *TourSnapshot `json:"tour,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanBeReviewed returns true if the booking is completed and not reviewed yet
func (b *Booking) CanBeReviewed() bool {
	return b.Status == StatusCompleted && !b.IsReviewed
}

// CreateBookingRequest gateway payload for booking creation
type CreateBookingRequest struct {
	TourID          string        `json:"tourId"`
	NumberOfPeople  int           `json:"numberOfPeople"`
	TotalAmount     float64       `json:"totalAmount"`
	SpecialRequests *string       `json:"specialRequests,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
}

// BookingsFilter filter for the current user's bookings
type BookingsFilter struct {
	Status *BookingStatus
	Page   int
	Limit  int
}
