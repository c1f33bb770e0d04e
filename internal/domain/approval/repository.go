package approval

import (
	"context"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)

	// SetDecision overwrites one role's slot in a single conditional update that
	// only matches while the slot is required. It returns ErrRequestNotFound or
	// ErrRoleNotRequired when nothing matched, otherwise the updated request.
	SetDecision(ctx context.Context, id string, role user.Role, slot Slot) (Request, error)

	// SumLeaveDays adds up the days of the employee's non-rejected leave of a
	// category starting in the given year.
	SumLeaveDays(ctx context.Context, employeeID string, category policy.LeaveCategory, year int) (float64, error)
}
