package models

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// DefaultNotificationDuration applies when a notification is added without
// an explicit duration.
const DefaultNotificationDuration = 5 * time.Second

// Notification is a user-facing message raised by the client.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// ExpiresAt is the moment the notification should stop being shown.
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}
