package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

// RecordPunchRequest records a finished day. A clock_out earlier than
// clock_in is taken to be on the next day.
type RecordPunchRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Date       string `json:"date"`
	ClockIn    string `json:"clock_in"`
	ClockOut   string `json:"clock_out"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required and must be YYYY-MM-DD"})
	}
	if !validator.IsValidClock(r.ClockIn) {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be HH:MM"})
	}
	if !validator.IsValidClock(r.ClockOut) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be HH:MM"})
	}
	if r.ClockIn != "" && r.ClockIn == r.ClockOut {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must differ from clock_in"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Instants resolves the punches to absolute times on the given date in loc.
func (r *RecordPunchRequest) Instants(loc *time.Location) (date, in, out time.Time) {
	date, _ = validator.IsValidDate(r.Date)
	inClock, _ := time.Parse(validator.ClockLayout, r.ClockIn)
	outClock, _ := time.Parse(validator.ClockLayout, r.ClockOut)

	in = time.Date(date.Year(), date.Month(), date.Day(), inClock.Hour(), inClock.Minute(), 0, 0, loc)
	out = time.Date(date.Year(), date.Month(), date.Day(), outClock.Hour(), outClock.Minute(), 0, 0, loc)
	if !out.After(in) {
		out = out.AddDate(0, 0, 1)
	}
	return date, in, out
}

type AttendanceFilter struct {
	From *string
	To   *string
}

type AttendanceResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"`
	ClockIn       time.Time `json:"clock_in"`
	ClockOut      time.Time `json:"clock_out"`
	WorkedHours   string    `json:"worked_hours"`
	OvertimeHours string    `json:"overtime_hours"`
	IsHoliday     bool      `json:"is_holiday"`
	GrantID       *string   `json:"grant_id,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date.Format(validator.DateLayout),
		ClockIn:       a.ClockIn,
		ClockOut:      a.ClockOut,
		WorkedHours:   a.WorkedHours.String(),
		OvertimeHours: a.OvertimeHours.String(),
		IsHoliday:     a.IsHoliday,
		GrantID:       a.GrantID,
	}
}
