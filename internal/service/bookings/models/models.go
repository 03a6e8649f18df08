package models

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
	"github.com/m04kA/SMC-TourBooking/internal/integrations/gateway"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetMyBookingsRequest запрос на получение бронирований текущего пользователя
type GetMyBookingsRequest struct {
	Session domain.Session
	Status  *string
	Page    int
	Limit   int
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	domain.Booking

	// Вычисляемые флаги для кнопок списка
	CanReview bool `json:"canReview"`
	CanPay    bool `json:"canPay"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Meta     domain.PageMeta   `json:"meta"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		Booking:   *b,
		CanReview: b.CanBeReviewed(),
		CanPay: b.PaymentURL != nil &&
			b.PaymentStatus != domain.PaymentPaid &&
			b.Status != domain.StatusCancelled,
	}
}

// FromGatewayList конвертирует страницу бэкенда в DTO
func FromGatewayList(list *gateway.BookingList) *BookingListResponse {
	if list == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(list.Bookings)),
		Meta:     list.Meta,
	}

	for i := range list.Bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&list.Bookings[i]))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
// Регистр не важен: "confirmed" и "CONFIRMED" равнозначны
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(status)))

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
