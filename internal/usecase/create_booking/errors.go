package create_booking

import "errors"

var (
	// ErrTourNotFound возвращается, когда тур не найден
	ErrTourNotFound = errors.New("create_booking: tour not found")

	// ErrTourUnavailable возвращается, когда тур неактивен, заполнен или уже начался
	ErrTourUnavailable = errors.New("create_booking: tour is not available for booking")

	// ErrSubmissionInProgress возвращается, когда отправка с тем же токеном еще выполняется
	ErrSubmissionInProgress = errors.New("create_booking: submission already in progress")

	// ErrAlreadySubmitted возвращается, когда форма уже успешно отправлена
	ErrAlreadySubmitted = errors.New("create_booking: form already submitted")

	// ErrTokenMismatch возвращается, когда токен формы выдан другому пользователю или для другого тура
	ErrTokenMismatch = errors.New("create_booking: submission token belongs to another booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
