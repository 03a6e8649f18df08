package list_notifications

import "github.com/m04kA/SMC-TourBooking/internal/domain"

type NotificationService interface {
	Drain(sessionID string) []domain.Notification
}
