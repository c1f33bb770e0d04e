package notification

import (
	"context"
)

// Notifier is the fire-and-forget side used by workflow services.
type Notifier interface {
	// Notify never reports failure to the caller; problems are logged.
	Notify(ctx context.Context, req CreateNotificationRequest)
}

// Service defines the notification service interface
type Service interface {
	Notifier

	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error

	GetPreferences(ctx context.Context, employeeID string) ([]PreferenceResponse, error)
	UpdatePreference(ctx context.Context, employeeID string, req UpdatePreferenceRequest) error

	// Stop drains the queue and waits for the workers.
	Stop()
}
