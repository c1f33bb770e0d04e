package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeRequestSubmitted NotificationType = "request_submitted"
	TypeRequestDecided   NotificationType = "request_decided"
	TypeRequestApproved  NotificationType = "request_approved"
	TypeRequestRejected  NotificationType = "request_rejected"
	TypeGrantIssued      NotificationType = "grant_issued"
	TypeGrantClaimed     NotificationType = "grant_claimed"
	TypeGrantExpiring    NotificationType = "grant_expiring"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeRequestSubmitted,
		TypeRequestDecided,
		TypeRequestApproved,
		TypeRequestRejected,
		TypeGrantIssued,
		TypeGrantClaimed,
		TypeGrantExpiring,
	}
}

func ParseNotificationType(s string) (NotificationType, bool) {
	for _, t := range AllNotificationTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]any
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// NotificationPreference represents user preference for a notification type
type NotificationPreference struct {
	EmployeeID       string
	NotificationType NotificationType
	Enabled          bool
	UpdatedAt        time.Time
}
