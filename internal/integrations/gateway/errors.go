package gateway

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound ресурс не найден (404 или success:false со статусом 404)
	ErrNotFound = errors.New("gateway client: resource not found")

	// ErrUnauthorized сессия отсутствует или истекла
	ErrUnauthorized = errors.New("gateway client: unauthorized")

	// ErrRejected бэкенд вернул конверт с success:false
	ErrRejected = errors.New("gateway client: request rejected")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут, сборка запроса)
	ErrInternal = errors.New("gateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("gateway client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что некритичные данные недоступны и вызывающий показывает пустое состояние
	ErrServiceDegraded = errors.New("gateway unavailable: graceful degradation applied")
)

// EnvelopeError логический отказ бэкенда: конверт с success:false
// Это не транспортная ошибка - сообщение и ошибки полей предназначены пользователю
type EnvelopeError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return "gateway client: request rejected"
	}
	return "gateway client: request rejected: " + e.Message
}

// Unwrap позволяет проверять errors.Is(err, ErrRejected)
func (e *EnvelopeError) Unwrap() error {
	return ErrRejected
}

// Is сопоставляет статус ответа с ErrNotFound и ErrUnauthorized
func (e *EnvelopeError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// AsEnvelopeError извлекает EnvelopeError из цепочки ошибок
func AsEnvelopeError(err error) (*EnvelopeError, bool) {
	var envErr *EnvelopeError
	if errors.As(err, &envErr) {
		return envErr, true
	}
	return nil, false
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func isRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
