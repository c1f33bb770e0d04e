package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one employee-day of punches.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time // calendar date, UTC midnight
	ClockIn       time.Time
	ClockOut      time.Time
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	IsHoliday     bool
	GrantID       *string // compensatory grant issued for the overtime, if any
	CreatedAt     time.Time
}
