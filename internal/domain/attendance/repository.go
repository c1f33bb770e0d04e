package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create fails with ErrAlreadyRecorded when the employee already has a record for the date.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	SetGrant(ctx context.Context, id, grantID string) error
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
