package policy

import (
	"strings"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
)

type LeaveCategory string

const (
	LeaveCategoryCasual            LeaveCategory = "casual"
	LeaveCategoryMedical           LeaveCategory = "medical"
	LeaveCategoryRestrictedHoliday LeaveCategory = "restricted_holiday"
	LeaveCategoryLossOfPay         LeaveCategory = "loss_of_pay"
)

var LeaveCategoryValues = []string{
	string(LeaveCategoryCasual),
	string(LeaveCategoryMedical),
	string(LeaveCategoryRestrictedHoliday),
	string(LeaveCategoryLossOfPay),
}

func ParseLeaveCategory(s string) (LeaveCategory, bool) {
	c := LeaveCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range LeaveCategoryValues {
		if string(c) == v {
			return c, true
		}
	}
	return "", false
}

// Entitlement is the number of days allowed per year for each capped category.
// Loss of pay is never capped.
type Entitlement struct {
	Casual            float64
	Medical           float64
	RestrictedHoliday float64
}

// LeaveEntitlement returns the yearly allowance for an employee type.
// Medical is a flat cap of 7 days for confirmed staff.
func LeaveEntitlement(t employee.EmployeeType) Entitlement {
	if t.IsConfirmed() {
		return Entitlement{Casual: 12, Medical: 7, RestrictedHoliday: 1}
	}
	return Entitlement{Casual: 1}
}

// Allowed returns the cap for a category; unlimited is true for uncapped categories.
func (e Entitlement) Allowed(c LeaveCategory) (days float64, unlimited bool) {
	switch c {
	case LeaveCategoryCasual:
		return e.Casual, false
	case LeaveCategoryMedical:
		return e.Medical, false
	case LeaveCategoryRestrictedHoliday:
		return e.RestrictedHoliday, false
	case LeaveCategoryLossOfPay:
		return 0, true
	}
	return 0, false
}
