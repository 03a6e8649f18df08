package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда статус меняет не хост и не администратор
	ErrAccessDenied = errors.New("update_booking_status: access denied")

	// ErrRejected возвращается, когда бэкенд отклонил изменение статуса
	ErrRejected = errors.New("update_booking_status: rejected by backend")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
