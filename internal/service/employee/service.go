package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	requestRepo  approval.RequestRepository
	clock        clock.Clock
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	requestRepo approval.RequestRepository,
	clk clock.Clock,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		requestRepo:  requestRepo,
		clock:        clk,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e := req.ToEmployee()
	e.Code = strings.TrimSpace(e.Code)
	e.Name = strings.TrimSpace(e.Name)
	now := s.clock.Now()
	e.CreatedAt, e.UpdatedAt = now, now

	created, err := s.employeeRepo.Create(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.ToResponse(e))
	}
	return employee.ListEmployeeResponse{
		Employees:  out,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

var entitlementCategories = []policy.LeaveCategory{
	policy.LeaveCategoryCasual,
	policy.LeaveCategoryMedical,
	policy.LeaveCategoryRestrictedHoliday,
	policy.LeaveCategoryLossOfPay,
}

// Entitlement implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Entitlement(ctx context.Context, employeeID string, year int) (employee.EntitlementResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EntitlementResponse{}, err
	}
	if year == 0 {
		year = clock.Today(s.clock).Year()
	}

	ent := policy.LeaveEntitlement(e.EmployeeType)
	lines := make([]employee.EntitlementLine, 0, len(entitlementCategories))
	for _, c := range entitlementCategories {
		used, err := s.requestRepo.SumLeaveDays(ctx, e.ID, c, year)
		if err != nil {
			return employee.EntitlementResponse{}, fmt.Errorf("failed to sum %s leave: %w", c, err)
		}
		allowed, unlimited := ent.Allowed(c)
		line := employee.EntitlementLine{Category: string(c), Allowed: allowed, Used: used, Unlimited: unlimited}
		if !unlimited {
			line.Remaining = max(allowed-used, 0)
		}
		lines = append(lines, line)
	}

	return employee.EntitlementResponse{
		EmployeeID:   e.ID,
		EmployeeType: string(e.EmployeeType),
		Year:         year,
		Lines:        lines,
	}, nil
}

// Celebrations implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Celebrations(ctx context.Context, asOf time.Time) ([]employee.CelebrationResponse, error) {
	if asOf.IsZero() {
		asOf = s.clock.Now()
	}
	employees, _, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, err
	}

	celebrations := policy.Celebrations(employees, asOf, s.clock.Location())
	out := make([]employee.CelebrationResponse, 0, len(celebrations))
	for _, c := range celebrations {
		out = append(out, employee.CelebrationResponse{
			EmployeeID: c.Employee.ID,
			Name:       c.Employee.Name,
			Kind:       string(c.Kind),
			Years:      c.Years,
		})
	}
	return out, nil
}
