package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

const (
	msgInternalError = "Internal server error"
	msgUnauthorized  = "Please sign in to continue"

	maxBodyBytes = 1 << 20
)

// RespondJSON отправляет data в конверте {success, message, data}
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	RespondEnvelope(w, status, domain.Envelope[interface{}]{
		Success: status < http.StatusBadRequest,
		Data:    dataPtr(data),
	})
}

// RespondMessage отправляет успешный ответ с сообщением для пользователя
func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondEnvelope(w, status, domain.Envelope[interface{}]{
		Success: true,
		Message: message,
		Data:    dataPtr(data),
	})
}

// RespondEnvelope пишет конверт как есть
func RespondEnvelope(w http.ResponseWriter, status int, env domain.Envelope[interface{}]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// RespondError отправляет ошибку в конверте {success:false, message}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondEnvelope(w, status, domain.Envelope[interface{}]{
		Success: false,
		Message: message,
	})
}

// RespondFailure ошибка вместе с данными, которые клиенту нужны для отрисовки
func RespondFailure(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondEnvelope(w, status, domain.Envelope[interface{}]{
		Success: false,
		Message: message,
		Data:    dataPtr(data),
	})
}

// RespondValidationError отправляет ошибки полей; data может содержать состояние формы
func RespondValidationError(w http.ResponseWriter, message string, fields domain.ValidationErrors, data interface{}) {
	RespondEnvelope(w, http.StatusUnprocessableEntity, domain.Envelope[interface{}]{
		Success: false,
		Message: message,
		Data:    dataPtr(data),
		Errors:  fieldErrors(fields),
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthorized)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON читает тело запроса; неизвестные поля и лишние данные после JSON запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if decoder.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func dataPtr(data interface{}) *interface{} {
	if data == nil {
		return nil
	}
	return &data
}

func fieldErrors(fields domain.ValidationErrors) map[string][]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(fields))
	for field, message := range fields {
		out[field] = []string{message}
	}
	return out
}
