package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

type AttendanceService interface {
	// RecordPunch stores a day's punches, derives overtime against the employee's
	// shift and issues a compensatory grant when the employee is eligible.
	RecordPunch(ctx context.Context, actor user.ActingUser, req RecordPunchRequest) (AttendanceResponse, error)
	GetMyAttendance(ctx context.Context, actor user.ActingUser, filter AttendanceFilter) ([]AttendanceResponse, error)
}
