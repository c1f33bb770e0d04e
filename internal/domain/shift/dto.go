package shift

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
	}
	if r.StartTime == r.EndTime && r.StartTime != "" {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must differ from start_time"})
	}
	if r.BreakMinutes < 0 || r.BreakMinutes > 240 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "break_minutes must be between 0 and 240"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	ShiftID    string `json:"shift_id"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "shift_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	BreakMinutes      int    `json:"break_minutes"`
	Hours             string `json:"hours"`
	IsNextDayCheckout bool   `json:"is_next_day_checkout"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                s.ID,
		Name:              s.Name,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		BreakMinutes:      s.BreakMinutes,
		Hours:             s.Length().String(),
		IsNextDayCheckout: s.IsNextDayCheckout(),
	}
}

type AssignmentResponse struct {
	EmployeeID string        `json:"employee_id"`
	Shift      ShiftResponse `json:"shift"`
	AssignedAt time.Time     `json:"assigned_at"`
}
