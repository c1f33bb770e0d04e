package shift

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftService(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, sqlite.Migrate(ctx, db))

	employees := sqlite.NewEmployeeRepository(db)
	emp, err := employees.Create(ctx, employee.Employee{
		Code: "E1", Name: "Ravi", Department: "Production", Designation: "Technician",
		EmployeeType: employee.EmployeeTypeConfirmed, Role: user.RoleEmployee,
		DateOfJoining: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	svc := NewShiftService(sqlite.NewShiftRepository(db), employees,
		clock.NewFixed(time.Date(2025, 8, 18, 6, 0, 0, 0, time.UTC), time.UTC))

	sh, err := svc.ShiftFor(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.DefaultShift.Name, sh.Name)

	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "", StartTime: "25:00"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	night, err := svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Night", StartTime: "22:00", EndTime: "06:00", BreakMinutes: 30})
	require.NoError(t, err)
	assert.True(t, night.IsNextDayCheckout)
	assert.Equal(t, "7.5", night.Hours)

	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{Name: "Night", StartTime: "21:00", EndTime: "05:00"})
	assert.ErrorIs(t, err, shift.ErrShiftNameExists)

	_, err = svc.GetAssignment(ctx, emp.ID)
	assert.ErrorIs(t, err, shift.ErrAssignmentNotFound)

	_, err = svc.AssignShift(ctx, shift.AssignShiftRequest{EmployeeID: emp.ID, ShiftID: "nope"})
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)

	assigned, err := svc.AssignShift(ctx, shift.AssignShiftRequest{EmployeeID: emp.ID, ShiftID: night.ID})
	require.NoError(t, err)
	assert.Equal(t, "Night", assigned.Shift.Name)

	got, err := svc.GetAssignment(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, night.ID, got.Shift.ID)

	sh, err = svc.ShiftFor(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "22:00", sh.StartTime)

	list, err := svc.ListShifts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
