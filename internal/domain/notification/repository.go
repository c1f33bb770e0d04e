package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n Notification) error
	CreateBatch(ctx context.Context, notifications []Notification) error
	ListByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]Notification, int, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error

	// Preferences. A type with no stored preference is enabled.
	GetPreferences(ctx context.Context, employeeID string) ([]NotificationPreference, error)
	UpsertPreference(ctx context.Context, pref NotificationPreference) error
	IsNotificationEnabled(ctx context.Context, employeeID string, notifType NotificationType) (bool, error)
}
