// Package repository selects the record store that backs the workflow.
package repository

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-workflow-go/internal/config"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository/sqlite"
)

// Store bundles one repository per aggregate over a single backend.
type Store struct {
	Employees     employee.EmployeeRepository
	Requests      approval.RequestRepository
	Grants        grant.GrantRepository
	Holidays      holiday.HolidayRepository
	Shifts        shift.ShiftRepository
	Attendance    attendance.AttendanceRepository
	Notifications notification.Repository

	close func()
}

// Open connects to the configured driver and applies the schema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return &Store{
			Employees:     postgresql.NewEmployeeRepository(db),
			Requests:      postgresql.NewApprovalRequestRepository(db),
			Grants:        postgresql.NewGrantRepository(db),
			Holidays:      postgresql.NewHolidayRepository(db),
			Shifts:        postgresql.NewShiftRepository(db),
			Attendance:    postgresql.NewAttendanceRepository(db),
			Notifications: postgresql.NewNotificationRepository(db),
			close:         db.Close,
		}, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return &Store{
			Employees:     sqlite.NewEmployeeRepository(db),
			Requests:      sqlite.NewApprovalRequestRepository(db),
			Grants:        sqlite.NewGrantRepository(db),
			Holidays:      sqlite.NewHolidayRepository(db),
			Shifts:        sqlite.NewShiftRepository(db),
			Attendance:    sqlite.NewAttendanceRepository(db),
			Notifications: sqlite.NewNotificationRepository(db),
			close:         func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
