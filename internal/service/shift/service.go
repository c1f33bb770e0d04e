package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	employees employee.EmployeeRepository
	clock     clock.Clock
}

func NewShiftService(shiftRepo shift.ShiftRepository, employeeRepo employee.EmployeeRepository, clk clock.Clock) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: shiftRepo,
		employees:       employeeRepo,
		clock:           clk,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	now := s.clock.Now()
	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		Name:         strings.TrimSpace(req.Name),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(created), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		out = append(out, shift.ToResponse(sh))
	}
	return out, nil
}

// AssignShift implements shift.ShiftService.
func (s *ShiftServiceImpl) AssignShift(ctx context.Context, req shift.AssignShiftRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return shift.AssignmentResponse{}, err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	a, err := s.ShiftRepository.Assign(ctx, shift.Assignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    sh.ID,
		AssignedAt: s.clock.Now(),
	})
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to assign shift: %w", err)
	}
	return shift.AssignmentResponse{EmployeeID: a.EmployeeID, Shift: shift.ToResponse(sh), AssignedAt: a.AssignedAt}, nil
}

// GetAssignment implements shift.ShiftService.
func (s *ShiftServiceImpl) GetAssignment(ctx context.Context, employeeID string) (shift.AssignmentResponse, error) {
	a, err := s.ShiftRepository.GetAssignment(ctx, employeeID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, a.ShiftID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	return shift.AssignmentResponse{EmployeeID: a.EmployeeID, Shift: shift.ToResponse(sh), AssignedAt: a.AssignedAt}, nil
}

// ShiftFor implements shift.ShiftService.
func (s *ShiftServiceImpl) ShiftFor(ctx context.Context, employeeID string) (shift.Shift, error) {
	a, err := s.ShiftRepository.GetAssignment(ctx, employeeID)
	if errors.Is(err, shift.ErrAssignmentNotFound) {
		return shift.DefaultShift, nil
	}
	if err != nil {
		return shift.Shift{}, err
	}
	return s.ShiftRepository.GetByID(ctx, a.ShiftID)
}
