package employee

import (
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code          string  `json:"employee_code"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Designation   string  `json:"designation"`
	EmployeeType  string  `json:"employee_type"`
	Role          string  `json:"role"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	DateOfJoining string  `json:"date_of_joining"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if validator.IsEmpty(r.Designation) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "designation is required"})
	}
	if _, ok := ParseEmployeeType(r.EmployeeType); !ok {
		errs = append(errs, validator.ValidationError{Field: "employee_type", Message: "employee_type is invalid"})
	}
	if r.Role != "" {
		if _, ok := user.ParseRole(r.Role); !ok {
			errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of employee, hod, ceo, admin"})
		}
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "date_of_birth must be YYYY-MM-DD"})
		}
	}
	if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "date_of_joining must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee converts a validated request.
func (r *CreateEmployeeRequest) ToEmployee() Employee {
	empType, _ := ParseEmployeeType(r.EmployeeType)
	role := user.RoleEmployee
	if parsed, ok := user.ParseRole(r.Role); ok {
		role = parsed
	}
	joined, _ := validator.IsValidDate(r.DateOfJoining)

	e := Employee{
		Code:          r.Code,
		Name:          r.Name,
		Department:    r.Department,
		Designation:   r.Designation,
		EmployeeType:  empType,
		Role:          role,
		DateOfJoining: joined,
	}
	if r.DateOfBirth != nil {
		dob, _ := validator.IsValidDate(*r.DateOfBirth)
		e.DateOfBirth = &dob
	}
	return e
}

type EmployeeFilter struct {
	Department *string
	Role       *user.Role
	Page       int
	Limit      int
}

// RoleArg is the role filter as a nullable query argument.
func (f EmployeeFilter) RoleArg() *string {
	if f.Role == nil {
		return nil
	}
	r := string(*f.Role)
	return &r
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"employee_code"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Designation   string  `json:"designation"`
	EmployeeType  string  `json:"employee_type"`
	Role          string  `json:"role"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	DateOfJoining string  `json:"date_of_joining"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		Code:          e.Code,
		Name:          e.Name,
		Department:    e.Department,
		Designation:   e.Designation,
		EmployeeType:  string(e.EmployeeType),
		Role:          string(e.Role),
		DateOfJoining: e.DateOfJoining.Format(validator.DateLayout),
	}
	if e.DateOfBirth != nil {
		dob := e.DateOfBirth.Format(validator.DateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

type EntitlementLine struct {
	Category  string  `json:"category"`
	Allowed   float64 `json:"allowed"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
	Unlimited bool    `json:"unlimited,omitempty"`
}

type EntitlementResponse struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeType string            `json:"employee_type"`
	Year         int               `json:"year"`
	Lines        []EntitlementLine `json:"lines"`
}

type CelebrationResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Years      int    `json:"years,omitempty"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
