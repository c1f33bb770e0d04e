package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (employee.EmployeeService, approval.RequestRepository) {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	// 20:00 UTC on the 27th is already the 28th in Kolkata
	clk := clock.NewFixed(time.Date(2025, 2, 27, 20, 0, 0, 0, time.UTC), loc)

	requests := sqlite.NewApprovalRequestRepository(db)
	return NewEmployeeService(sqlite.NewEmployeeRepository(db), requests, clk), requests
}

func TestCreateAndGetEmployee(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Code: "E1"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	req := employee.CreateEmployeeRequest{
		Code: " E1 ", Name: "Meera", Department: "Production", Designation: "Technician",
		EmployeeType: "confirmed", DateOfJoining: "2020-02-28", DateOfBirth: strPtr("1992-02-29"),
	}
	created, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "E1", created.Code)
	assert.Equal(t, string(user.RoleEmployee), created.Role)

	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	got, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1992-02-29", *got.DateOfBirth)

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, 20, list.Limit)
}

func TestEntitlement(t *testing.T) {
	svc, requests := newService(t)
	ctx := context.Background()

	e, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Code: "E1", Name: "Meera", Department: "Production", Designation: "Technician",
		EmployeeType: "confirmed", DateOfJoining: "2020-01-01",
	})
	require.NoError(t, err)

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err = requests.Create(ctx, approval.Request{
		EmployeeID: e.ID,
		Type:       approval.TypeLeave,
		Leave: &approval.LeavePayload{
			Category: policy.LeaveCategoryCasual, FromDate: day, ToDate: day.AddDate(0, 0, 1),
			Session: policy.SessionFullDay, Reason: "x", Days: 2,
		},
		Status: approval.NewStatus([]user.Role{user.RoleHOD, user.RoleAdmin}),
	})
	require.NoError(t, err)

	ent, err := svc.Entitlement(ctx, e.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, ent.Year)
	require.Len(t, ent.Lines, 4)
	assert.Equal(t, employee.EntitlementLine{Category: "casual", Allowed: 12, Used: 2, Remaining: 10}, ent.Lines[0])
	assert.Equal(t, 7.0, ent.Lines[1].Remaining)
	assert.True(t, ent.Lines[3].Unlimited)

	ent, err = svc.Entitlement(ctx, e.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ent.Lines[0].Used)

	_, err = svc.Entitlement(ctx, "missing", 2025)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCelebrations(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, req := range []employee.CreateEmployeeRequest{
		{Code: "E1", Name: "Leap", DateOfBirth: strPtr("1992-02-29"), DateOfJoining: "2023-06-01"},
		{Code: "E2", Name: "Veteran", DateOfJoining: "2015-02-28"},
		{Code: "E3", Name: "Newcomer", DateOfJoining: "2025-02-28"},
		{Code: "E4", Name: "Other", DateOfBirth: strPtr("1990-02-27"), DateOfJoining: "2020-02-27"},
	} {
		req.Department, req.Designation, req.EmployeeType = "Production", "Technician", "confirmed"
		_, err := svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
	}

	got, err := svc.Celebrations(ctx, time.Time{})
	require.NoError(t, err)

	kinds := map[string]employee.CelebrationResponse{}
	for _, c := range got {
		kinds[c.Name+"/"+c.Kind] = c
	}
	assert.Len(t, got, 2)
	assert.Equal(t, 33, kinds["Leap/birthday"].Years)
	assert.Equal(t, 10, kinds["Veteran/work_anniversary"].Years)
}
