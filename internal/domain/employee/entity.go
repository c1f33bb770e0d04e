package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

type Employee struct {
	ID            string
	Code          string
	Name          string
	Department    string
	Designation   string
	EmployeeType  EmployeeType
	Role          user.Role
	DateOfBirth   *time.Time
	DateOfJoining time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmployeeType string

const (
	EmployeeTypeConfirmed EmployeeType = "confirmed"
	EmployeeTypeProbation EmployeeType = "probation"
	EmployeeTypeOJT       EmployeeType = "ojt"
	EmployeeTypeTrainee   EmployeeType = "trainee"
	EmployeeTypeContract  EmployeeType = "contract"
)

var EmployeeTypeValues = []string{
	string(EmployeeTypeConfirmed),
	string(EmployeeTypeProbation),
	string(EmployeeTypeOJT),
	string(EmployeeTypeTrainee),
	string(EmployeeTypeContract),
}

// IsConfirmed reports whether the employee has completed confirmation.
func (t EmployeeType) IsConfirmed() bool {
	return t == EmployeeTypeConfirmed
}

func ParseEmployeeType(s string) (EmployeeType, bool) {
	t := EmployeeType(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range EmployeeTypeValues {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}
