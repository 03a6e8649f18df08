package domain

import "time"

// NotificationLevel toast severity
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

// Notification ephemeral user-visible notice (toast)
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}
