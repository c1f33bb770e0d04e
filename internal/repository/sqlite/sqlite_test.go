package sqlite

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(ctx, db))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, Migrate(context.Background(), db))
}

func TestEmployeeRepository(t *testing.T) {
	repo := NewEmployeeRepository(newTestDB(t))
	ctx := context.Background()

	dob := day(1990, time.February, 28)
	created, err := repo.Create(ctx, employee.Employee{
		Code: "E001", Name: "Asha", Department: "Production", Designation: "Technician",
		EmployeeType: employee.EmployeeTypeConfirmed, Role: user.RoleEmployee,
		DateOfBirth: &dob, DateOfJoining: day(2020, time.June, 1),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, dob, *created.DateOfBirth)

	_, err = repo.Create(ctx, employee.Employee{Code: "E001", Name: "Dup", DateOfJoining: day(2021, 1, 1)})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	dept := "Production"
	list, total, err := repo.List(ctx, employee.EmployeeFilter{Department: &dept, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestHolidayRepository_SkipsDuplicates(t *testing.T) {
	repo := NewHolidayRepository(newTestDB(t))
	ctx := context.Background()

	rows := []holiday.Holiday{
		{Name: "Diwali", Date: day(2025, 10, 21), Type: holiday.HolidayTypeFixed},
		{Name: "Onam", Date: day(2025, 9, 5), Type: holiday.HolidayTypeRestricted},
	}
	n, err := repo.CreateBatch(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CreateBatch(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := repo.ListByYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Onam", got[0].Name)
	assert.Equal(t, holiday.HolidayTypeRestricted, got[0].Type)

	got, err = repo.ListByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestApprovalRequestRepository(t *testing.T) {
	repo := NewApprovalRequestRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, approval.Request{
		EmployeeID: "emp-1",
		Type:       approval.TypeOD,
		OD: &approval.ODPayload{
			FromDate: day(2025, 8, 19), ToDate: day(2025, 8, 21), Purpose: "audit", Place: "Pune",
		},
		Status: approval.NewStatus(approval.RequiredRoles(approval.TypeOD, user.RoleEmployee)),
	})
	require.NoError(t, err)
	assert.Equal(t, approval.OutcomePending, created.Outcome())
	assert.Equal(t, "Pune", created.OD.Place)

	now := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)
	by := "hod-1"
	for _, role := range []user.Role{user.RoleHOD, user.RoleCEO} {
		_, err := repo.SetDecision(ctx, created.ID, role, approval.Slot{State: approval.SlotApproved, DecidedBy: &by, DecidedAt: &now})
		require.NoError(t, err)
	}

	admin := user.RoleAdmin
	inbox, total, err := repo.List(ctx, approval.RequestFilter{PendingFor: &admin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, inbox, 1)
	assert.Equal(t, now, *inbox[0].Status.HOD.DecidedAt)

	hod := user.RoleHOD
	_, total, err = repo.List(ctx, approval.RequestFilter{PendingFor: &hod})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	updated, err := repo.SetDecision(ctx, created.ID, user.RoleAdmin, approval.Slot{State: approval.SlotApproved})
	require.NoError(t, err)
	assert.Equal(t, approval.OutcomeApproved, updated.Outcome())

	approved := approval.OutcomeApproved
	from := day(2025, 8, 21)
	_, total, err = repo.List(ctx, approval.RequestFilter{Outcome: &approved, From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = repo.SetDecision(ctx, "missing", user.RoleHOD, approval.Slot{State: approval.SlotApproved})
	assert.ErrorIs(t, err, approval.ErrRequestNotFound)
}

func TestApprovalRequestRepository_SumLeaveDays(t *testing.T) {
	repo := NewApprovalRequestRepository(newTestDB(t))
	ctx := context.Background()

	leave := func(from time.Time, days float64) approval.Request {
		return approval.Request{
			EmployeeID: "emp-1",
			Type:       approval.TypeLeave,
			Leave: &approval.LeavePayload{
				Category: policy.LeaveCategoryCasual, FromDate: from, ToDate: from,
				Session: policy.SessionFullDay, Reason: "x", Days: days,
			},
			Status: approval.NewStatus([]user.Role{user.RoleHOD, user.RoleAdmin}),
		}
	}

	_, err := repo.Create(ctx, leave(day(2025, 3, 3), 1))
	require.NoError(t, err)
	rejected, err := repo.Create(ctx, leave(day(2025, 3, 4), 1))
	require.NoError(t, err)
	_, err = repo.Create(ctx, leave(day(2024, 3, 4), 1))
	require.NoError(t, err)
	_, err = repo.SetDecision(ctx, rejected.ID, user.RoleAdmin, approval.Slot{State: approval.SlotRejected})
	require.NoError(t, err)

	used, err := repo.SumLeaveDays(ctx, "emp-1", policy.LeaveCategoryCasual, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1.0, used)
}

func TestGrantRepository_ConcurrentClaims(t *testing.T) {
	repo := NewGrantRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)
	deadline := now.Add(48 * time.Hour)
	created, err := repo.Create(ctx, grant.Grant{
		EmployeeID: "emp-1", Date: day(2025, 8, 17), Hours: decimal.RequireFromString("1.5"),
		ClaimDeadline: &deadline, Source: grant.SourceRequest, SourceID: "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, deadline, *created.ClaimDeadline)

	_, err = repo.Create(ctx, grant.Grant{
		EmployeeID: "emp-1", Date: day(2025, 8, 17), Hours: decimal.NewFromInt(1),
		Source: grant.SourceRequest, SourceID: "req-1",
	})
	assert.ErrorIs(t, err, grant.ErrDuplicateSource)

	var wins atomic.Int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			ok, err := repo.MarkClaimed(ctx, created.ID, grant.Claim{Project: "Line 3", Description: "retool", ClaimedAt: now}, now)
			if ok {
				wins.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), wins.Load())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Claimed)
	assert.Equal(t, "Line 3", got.Claim.Project)
}

func TestGrantRepository_DeadlineWindow(t *testing.T) {
	repo := NewGrantRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{-time.Hour, 2 * time.Hour, 30 * time.Hour} {
		deadline := now.Add(offset)
		_, err := repo.Create(ctx, grant.Grant{
			EmployeeID: "emp-1", Date: day(2025, 8, 17), Hours: decimal.NewFromInt(2),
			ClaimDeadline: &deadline, Source: grant.SourceAttendance, SourceID: string(rune('a' + i)),
		})
		require.NoError(t, err)
	}

	expiring, err := repo.ListDeadlineBetween(ctx, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "b", expiring[0].SourceID)

	ok, err := repo.MarkClaimed(ctx, expiring[0].ID, grant.Claim{Project: "p", Description: "d", ClaimedAt: now}, now.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "claim after the deadline must not match")
}

func TestNotificationRepository(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []notification.Notification{
		{ID: "n1", RecipientID: "emp-1", Type: notification.TypeGrantIssued, Title: "a", Message: "a", Data: map[string]any{"grant_id": "g1"}},
		{ID: "n2", RecipientID: "emp-1", Type: notification.TypeGrantExpiring, Title: "b", Message: "b"},
		{ID: "n3", RecipientID: "emp-2", Type: notification.TypeGrantExpiring, Title: "c", Message: "c"},
	}))

	count, err := repo.GetUnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.MarkAsRead(ctx, []string{"n1", "n3"}, "emp-1"))
	unread, total, err := repo.ListByRecipient(ctx, "emp-1", 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "n2", unread[0].ID)

	count, err = repo.GetUnreadCount(ctx, "emp-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "marking is scoped to the recipient")

	enabled, err := repo.IsNotificationEnabled(ctx, "emp-1", notification.TypeGrantExpiring)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, repo.UpsertPreference(ctx, notification.NotificationPreference{
		EmployeeID: "emp-1", NotificationType: notification.TypeGrantExpiring, Enabled: false,
	}))
	enabled, err = repo.IsNotificationEnabled(ctx, "emp-1", notification.TypeGrantExpiring)
	require.NoError(t, err)
	assert.False(t, enabled)
}
