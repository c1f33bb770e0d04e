package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/google/uuid"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) error {
	return r.CreateBatch(ctx, []notification.Notification{n})
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := getQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]any, 0, len(notifications)*9)
	for _, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}
		dataJSON, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			n.ID, n.RecipientID, n.SenderID, string(n.Type), n.Title, n.Message,
			string(dataJSON), n.IsRead, formatTime(n.CreatedAt),
		)
	}

	query := `INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES ` + strings.Join(valueStrings, ", ")
	if _, err := q.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]notification.Notification, int, error) {
	q := getQuerier(ctx, r.db)

	where := "recipient_id = ?"
	if unreadOnly {
		where += " AND is_read = 0"
	}

	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications WHERE "+where, recipientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, recipient_id, sender_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE `+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, recipientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var (
			n              notification.Notification
			senderID, data sql.NullString
			readAt         sql.NullString
			typ, createdAt string
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &senderID, &typ, &n.Title, &n.Message,
			&data, &n.IsRead, &readAt, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = notification.NotificationType(typ)
		n.SenderID = nullString(senderID)
		if n.ReadAt, err = parseTimePtr(readAt); err != nil {
			return nil, 0, err
		}
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, 0, err
		}
		if data.Valid {
			if err := json.Unmarshal([]byte(data.String), &n.Data); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	q := getQuerier(ctx, r.db)

	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = 0`, recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := getQuerier(ctx, r.db)

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+2)
	args = append(args, now(), recipientID)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	_, err := q.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = 1, read_at = ?
		WHERE recipient_id = ? AND is_read = 0 AND id IN (`+strings.Join(placeholders, ", ")+`)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	q := getQuerier(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		UPDATE notifications SET is_read = 1, read_at = ? WHERE recipient_id = ? AND is_read = 0
	`, now(), recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetPreferences(ctx context.Context, employeeID string) ([]notification.NotificationPreference, error) {
	q := getQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `
		SELECT employee_id, notification_type, enabled, updated_at
		FROM notification_preferences
		WHERE employee_id = ?
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	defer rows.Close()

	var prefs []notification.NotificationPreference
	for rows.Next() {
		var (
			p              notification.NotificationPreference
			typ, updatedAt string
		)
		if err := rows.Scan(&p.EmployeeID, &typ, &p.Enabled, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		p.NotificationType = notification.NotificationType(typ)
		if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

func (r *notificationRepository) UpsertPreference(ctx context.Context, pref notification.NotificationPreference) error {
	q := getQuerier(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		INSERT INTO notification_preferences (employee_id, notification_type, enabled, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (employee_id, notification_type)
		DO UPDATE SET enabled = excluded.enabled, updated_at = excluded.updated_at
	`, pref.EmployeeID, string(pref.NotificationType), pref.Enabled, now())
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}
	return nil
}

func (r *notificationRepository) IsNotificationEnabled(ctx context.Context, employeeID string, notifType notification.NotificationType) (bool, error) {
	q := getQuerier(ctx, r.db)

	var enabled bool
	err := q.QueryRowContext(ctx, `
		SELECT enabled FROM notification_preferences WHERE employee_id = ? AND notification_type = ?
	`, employeeID, string(notifType)).Scan(&enabled)
	if err != nil {
		if isNoRows(err) {
			// Default to enabled if no preference exists
			return true, nil
		}
		return false, fmt.Errorf("failed to check notification enabled: %w", err)
	}
	return enabled, nil
}
