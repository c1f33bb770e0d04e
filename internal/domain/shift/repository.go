package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context) ([]Shift, error)

	// Assign replaces the employee's current assignment.
	Assign(ctx context.Context, a Assignment) (Assignment, error)
	GetAssignment(ctx context.Context, employeeID string) (Assignment, error)
}
