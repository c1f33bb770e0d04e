package notification

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// CreateNotificationRequest is what workflow services hand to Notify.
type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]any
}

// MarkAsReadRequest marks the listed notifications, or all of them when All is set.
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
	All             bool     `json:"all"`
}

func (r *MarkAsReadRequest) Validate() error {
	if !r.All && len(r.NotificationIDs) == 0 {
		return validator.Fail("notification_ids", "notification_ids is required unless all is true")
	}
	return nil
}

type UpdatePreferenceRequest struct {
	NotificationType string `json:"notification_type"`
	Enabled          bool   `json:"enabled"`
}

func (r *UpdatePreferenceRequest) Validate() error {
	if _, ok := ParseNotificationType(r.NotificationType); !ok {
		return validator.Fail("notification_type", ErrInvalidNotificationType.Error())
	}
	return nil
}

// ============= Response DTOs =============

type NotificationResponse struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type PreferenceResponse struct {
	NotificationType NotificationType `json:"notification_type"`
	Enabled          bool             `json:"enabled"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
