package search_tours

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах поиска
	ErrInvalidInput = errors.New("search_tours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_tours: internal error")
)
