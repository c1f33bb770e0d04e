package employee

import (
	"context"
	"time"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// Entitlement reports allowed, used and remaining leave per category for the year.
	Entitlement(ctx context.Context, employeeID string, year int) (EntitlementResponse, error)

	// Celebrations lists birthdays and work anniversaries falling on asOf's date.
	Celebrations(ctx context.Context, asOf time.Time) ([]CelebrationResponse, error)
}
