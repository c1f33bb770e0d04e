package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/google/uuid"
)

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_code, name, department, designation, employee_type, role,
	date_of_birth, date_of_joining, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		e                    employee.Employee
		empType, role        string
		dob                  sql.NullString
		joined               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.Code, &e.Name, &e.Department, &e.Designation, &empType, &role,
		&dob, &joined, &createdAt, &updatedAt); err != nil {
		return employee.Employee{}, err
	}
	e.EmployeeType = employee.EmployeeType(empType)
	e.Role = user.Role(role)

	var err error
	if dob.Valid {
		d, err := parseDate(dob.String)
		if err != nil {
			return employee.Employee{}, err
		}
		e.DateOfBirth = &d
	}
	if e.DateOfJoining, err = parseDate(joined); err != nil {
		return employee.Employee{}, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return employee.Employee{}, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := getQuerier(ctx, r.db)

	var dob *string
	if newEmployee.DateOfBirth != nil {
		d := formatDate(*newEmployee.DateOfBirth)
		dob = &d
	}
	ts := now()
	id := uuid.NewString()

	_, err := q.ExecContext(ctx, `
		INSERT INTO employees (
			id, employee_code, name, department, designation, employee_type, role,
			date_of_birth, date_of_joining, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, newEmployee.Code, newEmployee.Name, newEmployee.Department, newEmployee.Designation,
		string(newEmployee.EmployeeType), string(newEmployee.Role),
		dob, formatDate(newEmployee.DateOfJoining), ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := getQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := getQuerier(ctx, r.db)

	where := "WHERE (? IS NULL OR department = ?) AND (? IS NULL OR role = ?)"
	args := []any{filter.Department, filter.Department, filter.RoleArg(), filter.RoleArg()}

	var total int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees ` + where + ` ORDER BY name, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, (max(filter.Page, 1)-1)*filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}
