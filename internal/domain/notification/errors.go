package notification

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

// Notification domain errors
var (
	ErrNotificationNotFound    = apperror.New(apperror.KindNotFound, "notification not found")
	ErrInvalidNotificationType = apperror.New(apperror.KindValidation, "invalid notification type")
)
