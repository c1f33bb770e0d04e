package policy

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Overtime is only paid out to shop-floor grades in the listed departments.
var (
	OvertimeDepartments  = []string{"Production", "Mechanical", "AMETL"}
	OvertimeDesignations = []string{"Technician", "Sr. Technician", "Junior Engineer"}
)

// IsOvertimeEligible requires both the department and the designation to be listed.
func IsOvertimeEligible(department, designation string) bool {
	return containsNormalized(OvertimeDepartments, department) &&
		containsNormalized(OvertimeDesignations, designation)
}

// MinClaimableHours is the smallest grant that can be claimed.
var MinClaimableHours = decimal.NewFromInt(1)

// OvertimeHours returns the hours worked beyond the shift. On a holiday every
// worked hour is overtime.
func OvertimeHours(worked, shiftLength decimal.Decimal, holiday bool) decimal.Decimal {
	if worked.IsNegative() {
		return decimal.Zero
	}
	if holiday {
		return worked
	}
	extra := worked.Sub(shiftLength)
	if extra.IsNegative() {
		return decimal.Zero
	}
	return extra
}

func containsNormalized(list []string, value string) bool {
	v := normalize(value)
	if v == "" {
		return false
	}
	for _, item := range list {
		if normalize(item) == v {
			return true
		}
	}
	return false
}

// normalize folds case, drops dots and collapses whitespace so that
// "Sr. Technician", "sr technician" and "SR.  TECHNICIAN" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, ".", " "))
	return strings.Join(strings.Fields(s), " ")
}
