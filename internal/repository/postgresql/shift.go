package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, start_time, end_time, break_minutes, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanShift(q.QueryRow(ctx, `
		INSERT INTO shifts (id, name, start_time, end_time, break_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING `+shiftColumns,
		uuid.NewString(), s.Name, s.StartTime, s.EndTime, s.BreakMinutes,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	if !validator.IsValidUUID(id) {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_time, name`)
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

func (r *shiftRepositoryImpl) Assign(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO shift_assignments (employee_id, shift_id, assigned_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (employee_id) DO UPDATE SET shift_id = EXCLUDED.shift_id, assigned_at = EXCLUDED.assigned_at
		RETURNING employee_id, shift_id, assigned_at
	`, a.EmployeeID, a.ShiftID).Scan(&a.EmployeeID, &a.ShiftID, &a.AssignedAt)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to assign shift: %w", err)
	}
	return a, nil
}

func (r *shiftRepositoryImpl) GetAssignment(ctx context.Context, employeeID string) (shift.Assignment, error) {
	if !validator.IsValidUUID(employeeID) {
		return shift.Assignment{}, shift.ErrAssignmentNotFound
	}
	q := GetQuerier(ctx, r.db)

	var a shift.Assignment
	err := q.QueryRow(ctx, `
		SELECT employee_id, shift_id, assigned_at FROM shift_assignments WHERE employee_id = $1
	`, employeeID).Scan(&a.EmployeeID, &a.ShiftID, &a.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return a, nil
}
