package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, attendance_date, clock_in, clock_out,
	worked_hours::text, overtime_hours::text, is_holiday, grant_id, created_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		a                attendance.Attendance
		worked, overtime string
	)
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.ClockIn,
		&a.ClockOut,
		&worked,
		&overtime,
		&a.IsHoliday,
		&a.GrantID,
		&a.CreatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.Date = toDate(a.Date)
	if a.WorkedHours, err = decimal.NewFromString(worked); err != nil {
		return attendance.Attendance{}, err
	}
	if a.OvertimeHours, err = decimal.NewFromString(overtime); err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanAttendance(q.QueryRow(ctx, `
		INSERT INTO attendances (
			id, employee_id, attendance_date, clock_in, clock_out,
			worked_hours, overtime_hours, is_holiday, created_at
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8, NOW())
		RETURNING `+attendanceColumns,
		uuid.NewString(), a.EmployeeID, a.Date, a.ClockIn, a.ClockOut,
		a.WorkedHours.String(), a.OvertimeHours.String(), a.IsHoliday,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyRecorded
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validator.IsValidUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) SetGrant(ctx context.Context, id, grantID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE attendances SET grant_id = $2 WHERE id = $1`, id, grantID)
	if err != nil {
		return fmt.Errorf("failed to link grant: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE employee_id = $1 AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date DESC
	`, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
