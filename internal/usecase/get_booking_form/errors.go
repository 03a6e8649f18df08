package get_booking_form

import "errors"

var (
	// ErrTourNotFound возвращается, когда тур не найден или бэкенд ответил success:false
	ErrTourNotFound = errors.New("get_booking_form: tour not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_booking_form: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_form: internal error")
)
