package gateway

import "github.com/m04kA/SMC-TourBooking/internal/domain"

// UpdateBookingStatusRequest тело PATCH /bookings/{id}/status
type UpdateBookingStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// tourListData data из GET /tours
type tourListData struct {
	Data []domain.TourSnapshot `json:"data"`
	Meta domain.PageMeta       `json:"meta"`
}

// bookingListData data из GET /bookings/my-bookings
type bookingListData struct {
	Data []domain.Booking `json:"data"`
	Meta domain.PageMeta  `json:"meta"`
}

// BookingList страница бронирований пользователя
type BookingList struct {
	Bookings []domain.Booking
	Meta     domain.PageMeta
}

// Result успешный ответ бэкенда вместе с его сообщением
type Result[T any] struct {
	Data    *T
	Message string
}
