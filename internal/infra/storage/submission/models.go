package submission

import (
	"time"

	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

// Record запись о попытке отправки формы бронирования
// Ключ - токен формы, сгенерированный при её открытии
type Record struct {
	Key       string
	UserID    string
	TourID    string
	State     domain.SubmissionState
	BookingID *string
	Message   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo true, если ключ был выдан для этого пользователя и тура
func (r *Record) BelongsTo(userID, tourID string) bool {
	return r.UserID == userID && r.TourID == tourID
}

// IsFinal true для отправок, повтор которых не должен вызывать бэкенд
func (r *Record) IsFinal() bool {
	return r.State == domain.SubmissionSucceeded
}
