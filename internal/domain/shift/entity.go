package shift

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Shift is a daily working window. EndTime before StartTime means the shift
// ends on the next day.
type Shift struct {
	ID           string
	Name         string
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	BreakMinutes int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsNextDayCheckout reports whether the shift crosses midnight.
func (s Shift) IsNextDayCheckout() bool {
	return s.EndTime < s.StartTime
}

// Length is the paid length of the shift in hours.
func (s Shift) Length() decimal.Decimal {
	start, err1 := time.Parse(validator.ClockLayout, s.StartTime)
	end, err2 := time.Parse(validator.ClockLayout, s.EndTime)
	if err1 != nil || err2 != nil {
		return decimal.Zero
	}
	d := end.Sub(start)
	if d <= 0 {
		d += 24 * time.Hour
	}
	d -= time.Duration(s.BreakMinutes) * time.Minute
	if d < 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(d / time.Minute)).Div(decimal.NewFromInt(60)).Round(2)
}

// DefaultShift applies to employees with no assignment.
var DefaultShift = Shift{
	Name:         "General",
	StartTime:    "09:00",
	EndTime:      "17:30",
	BreakMinutes: 30,
}

// Assignment links an employee to their one active shift.
type Assignment struct {
	EmployeeID string
	ShiftID    string
	AssignedAt time.Time
}
