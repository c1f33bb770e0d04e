package policy

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsOvertimeEligible(t *testing.T) {
	tests := []struct {
		department, designation string
		want                    bool
	}{
		{"Production", "Technician", true},
		{"production", "sr technician", true},
		{" AMETL ", "Junior  Engineer", true},
		{"Mechanical", "SR. TECHNICIAN", true},
		{"Production", "Manager", false},
		{"Accounts", "Technician", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.department+"/"+tt.designation, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOvertimeEligible(tt.department, tt.designation))
		})
	}
}

func TestLeaveEntitlement(t *testing.T) {
	confirmed := LeaveEntitlement(employee.EmployeeTypeConfirmed)
	assert.Equal(t, Entitlement{Casual: 12, Medical: 7, RestrictedHoliday: 1}, confirmed)

	for _, et := range []employee.EmployeeType{
		employee.EmployeeTypeProbation, employee.EmployeeTypeOJT,
		employee.EmployeeTypeTrainee, employee.EmployeeTypeContract,
	} {
		assert.Equal(t, Entitlement{Casual: 1}, LeaveEntitlement(et), et)
	}

	_, unlimited := confirmed.Allowed(LeaveCategoryLossOfPay)
	assert.True(t, unlimited)
	days, unlimited := confirmed.Allowed(LeaveCategoryMedical)
	assert.False(t, unlimited)
	assert.Equal(t, 7.0, days)
}

func TestCalendar(t *testing.T) {
	cal := NewCalendar([]holiday.Holiday{
		{Name: "Diwali", Date: date(2025, time.October, 21), Type: holiday.HolidayTypeFixed},
		{Name: "Onam", Date: date(2025, time.September, 5), Type: holiday.HolidayTypeRestricted},
	})

	assert.True(t, cal.IsHoliday(date(2025, time.August, 15)))
	assert.False(t, cal.IsHoliday(date(2025, time.August, 18)))
	assert.True(t, cal.IsHoliday(date(2025, time.October, 21)))
	assert.False(t, cal.IsHoliday(date(2026, time.October, 21)), "imported fixed holidays do not recur")

	for d := date(2025, time.January, 5); d.Year() == 2025; d = d.AddDate(0, 0, 7) {
		assert.True(t, cal.IsHoliday(d), d.Format("2006-01-02"))
	}

	assert.True(t, cal.IsRestrictedHoliday(date(2025, time.September, 5)))
	assert.False(t, cal.IsHoliday(date(2025, time.September, 5)))
	assert.False(t, cal.IsRestrictedHoliday(date(2025, time.August, 15)))

	name, ok := cal.HolidayName(date(2025, time.August, 15))
	assert.True(t, ok)
	assert.Equal(t, "Independence Day", name)
}

func TestWorkingDays(t *testing.T) {
	cal := NewCalendar(nil)

	// Mon 11 Aug .. Mon 18 Aug 2025: skips Fri 15 Aug and Sun 17 Aug.
	assert.Equal(t, 6.0, WorkingDays(date(2025, 8, 11), date(2025, 8, 18), SessionFullDay, cal))
	assert.Equal(t, 0.5, WorkingDays(date(2025, 8, 18), date(2025, 8, 18), SessionFirstHalf, cal))
	assert.Equal(t, 0.0, WorkingDays(date(2025, 8, 17), date(2025, 8, 17), SessionFullDay, cal))
	assert.Equal(t, 0.0, WorkingDays(date(2025, 8, 18), date(2025, 8, 11), SessionFullDay, cal))
}

func TestOvertimeHours(t *testing.T) {
	eight := decimal.NewFromInt(8)
	assert.True(t, OvertimeHours(decimal.RequireFromString("9.5"), eight, false).Equal(decimal.RequireFromString("1.5")))
	assert.True(t, OvertimeHours(decimal.NewFromInt(7), eight, false).IsZero())
	assert.True(t, OvertimeHours(decimal.NewFromInt(5), eight, true).Equal(decimal.NewFromInt(5)))
}

func TestCelebrations(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	leapDOB := date(2000, time.February, 29)
	onTime := date(1990, time.March, 1)
	employees := []employee.Employee{
		{ID: "a", Name: "Leap", DateOfBirth: &leapDOB, DateOfJoining: date(2024, time.June, 1)},
		{ID: "b", Name: "Joiner", DateOfBirth: &onTime, DateOfJoining: date(2020, time.February, 28)},
		{ID: "c", Name: "New", DateOfJoining: date(2025, time.February, 28)},
	}

	// 27 Feb 2025 20:00 UTC is already 28 Feb in Kolkata.
	asOf := time.Date(2025, time.February, 27, 20, 0, 0, 0, time.UTC)
	got := Celebrations(employees, asOf, kolkata)

	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].Employee.ID)
		assert.Equal(t, CelebrationBirthday, got[0].Kind)
		assert.Equal(t, 25, got[0].Years)
		assert.Equal(t, "b", got[1].Employee.ID)
		assert.Equal(t, CelebrationWorkAnniversary, got[1].Kind)
		assert.Equal(t, 5, got[1].Years)
	}

	assert.Empty(t, Celebrations(employees, asOf, time.UTC))
}

func TestRecurringHolidays(t *testing.T) {
	got := RecurringHolidays(2025)
	require.Len(t, got, len(DefaultFixedHolidays))
	assert.Equal(t, "Republic Day", got[0].Name)
	assert.Equal(t, time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), got[len(got)-1].Date)
}
