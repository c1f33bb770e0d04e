package shift

import "context"

type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	AssignShift(ctx context.Context, req AssignShiftRequest) (AssignmentResponse, error)
	GetAssignment(ctx context.Context, employeeID string) (AssignmentResponse, error)

	// ShiftFor returns the employee's assigned shift, or DefaultShift.
	ShiftFor(ctx context.Context, employeeID string) (Shift, error)
}
