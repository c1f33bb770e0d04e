package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/shift"
	"github.com/google/uuid"
)

type shiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, name, start_time, end_time, break_minutes, created_at, updated_at`

func scanShift(row rowScanner) (shift.Shift, error) {
	var (
		s                    shift.Shift
		createdAt, updatedAt string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes, &createdAt, &updatedAt); err != nil {
		return shift.Shift{}, err
	}
	var err error
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return shift.Shift{}, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := getQuerier(ctx, r.db)

	id := uuid.NewString()
	ts := now()
	_, err := q.ExecContext(ctx, `
		INSERT INTO shifts (id, name, start_time, end_time, break_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, s.Name, s.StartTime, s.EndTime, s.BreakMinutes, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := getQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	q := getQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_time, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *shiftRepository) Assign(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := getQuerier(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		INSERT INTO shift_assignments (employee_id, shift_id, assigned_at)
		VALUES (?, ?, ?)
		ON CONFLICT (employee_id) DO UPDATE SET shift_id = excluded.shift_id, assigned_at = excluded.assigned_at
	`, a.EmployeeID, a.ShiftID, now())
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to assign shift: %w", err)
	}
	return r.GetAssignment(ctx, a.EmployeeID)
}

func (r *shiftRepository) GetAssignment(ctx context.Context, employeeID string) (shift.Assignment, error) {
	q := getQuerier(ctx, r.db)

	var (
		a          shift.Assignment
		assignedAt string
	)
	err := q.QueryRowContext(ctx, `
		SELECT employee_id, shift_id, assigned_at FROM shift_assignments WHERE employee_id = ?
	`, employeeID).Scan(&a.EmployeeID, &a.ShiftID, &assignedAt)
	if err != nil {
		if isNoRows(err) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	if a.AssignedAt, err = parseTime(assignedAt); err != nil {
		return shift.Assignment{}, err
	}
	return a, nil
}
