package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, attendance_date, clock_in, clock_out,
	worked_hours, overtime_hours, is_holiday, grant_id, created_at`

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		a                        attendance.Attendance
		date, in, out, createdAt string
		worked, overtime         string
		grantID                  sql.NullString
	)
	err := row.Scan(&a.ID, &a.EmployeeID, &date, &in, &out, &worked, &overtime, &a.IsHoliday, &grantID, &createdAt)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if a.Date, err = parseDate(date); err != nil {
		return attendance.Attendance{}, err
	}
	if a.ClockIn, err = parseTime(in); err != nil {
		return attendance.Attendance{}, err
	}
	if a.ClockOut, err = parseTime(out); err != nil {
		return attendance.Attendance{}, err
	}
	if a.WorkedHours, err = decimal.NewFromString(worked); err != nil {
		return attendance.Attendance{}, err
	}
	if a.OvertimeHours, err = decimal.NewFromString(overtime); err != nil {
		return attendance.Attendance{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return attendance.Attendance{}, err
	}
	a.GrantID = nullString(grantID)
	return a, nil
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := getQuerier(ctx, r.db)

	id := uuid.NewString()
	_, err := q.ExecContext(ctx, `
		INSERT INTO attendances (
			id, employee_id, attendance_date, clock_in, clock_out,
			worked_hours, overtime_hours, is_holiday, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, a.EmployeeID, formatDate(a.Date), formatTime(a.ClockIn), formatTime(a.ClockOut),
		a.WorkedHours.String(), a.OvertimeHours.String(), a.IsHoliday, now())
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyRecorded
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := getQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRowContext(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) SetGrant(ctx context.Context, id, grantID string) error {
	q := getQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `UPDATE attendances SET grant_id = ? WHERE id = ?`, grantID, id)
	if err != nil {
		return fmt.Errorf("failed to link grant: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := getQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE employee_id = ? AND attendance_date BETWEEN ? AND ?
		ORDER BY attendance_date DESC
	`, employeeID, formatDate(from), formatDate(to))
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
