package approval

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository/sqlite"
	grantservice "github.com/cmlabs-hris/hris-workflow-go/internal/service/grant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req notification.CreateNotificationRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
}

func (n *recordingNotifier) to(recipient string, t notification.NotificationType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, r := range n.sent {
		if r.RecipientID == recipient && r.Type == t {
			count++
		}
	}
	return count
}

type fixture struct {
	svc      approval.ApprovalService
	grants   grant.GrantRepository
	grantSvc grant.GrantService
	holidays holiday.HolidayRepository
	notifier *recordingNotifier

	staff, trainee, hod, otherHOD, ceo, admin user.ActingUser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	employees := sqlite.NewEmployeeRepository(db)
	f := &fixture{
		grants:   sqlite.NewGrantRepository(db),
		holidays: sqlite.NewHolidayRepository(db),
		notifier: &recordingNotifier{},
	}

	hire := func(code, dept string, empType employee.EmployeeType, role user.Role) user.ActingUser {
		e, err := employees.Create(ctx, employee.Employee{
			Code: code, Name: code, Department: dept, Designation: "Technician",
			EmployeeType: empType, Role: role, DateOfJoining: time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		return user.ActingUser{EmployeeID: e.ID, Role: role}
	}
	f.staff = hire("E1", "Production", employee.EmployeeTypeConfirmed, user.RoleEmployee)
	f.trainee = hire("E2", "Production", employee.EmployeeTypeTrainee, user.RoleEmployee)
	f.hod = hire("H1", "Production", employee.EmployeeTypeConfirmed, user.RoleHOD)
	f.otherHOD = hire("H2", "Stores", employee.EmployeeTypeConfirmed, user.RoleHOD)
	f.ceo = hire("C1", "Management", employee.EmployeeTypeConfirmed, user.RoleCEO)
	f.admin = hire("A1", "HR", employee.EmployeeTypeConfirmed, user.RoleAdmin)

	clk := clock.NewFixed(time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC), time.UTC)
	requests := sqlite.NewApprovalRequestRepository(db)
	f.grantSvc = grantservice.NewGrantService(f.grants, grantservice.NewRequestSourceVerifier(requests), f.notifier, clk, nil, grantservice.Config{})
	f.svc = NewApprovalService(requests, employees, f.holidays, f.grantSvc, f.notifier, clk, nil)
	return f
}

func leave(category, from, to string) approval.SubmitRequest {
	return approval.SubmitRequest{Type: "leave", Category: category, FromDate: from, ToDate: to, Reason: "family"}
}

func decide(role user.Role, decision string) approval.DecideRequest {
	return approval.DecideRequest{Role: string(role), Decision: decision}
}

func TestLeaveWalkthrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Thu 14 .. Mon 18 Aug 2025: the 15th is a fixed holiday and the 17th a Sunday.
	req, err := f.svc.Submit(ctx, f.staff, leave("casual", "2025-08-14", "2025-08-18"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, req.Payload["days"])
	assert.Equal(t, "pending", req.Outcome)
	assert.Equal(t, "not_required", req.Status["ceo"].State)
	assert.Equal(t, 1, f.notifier.to(f.hod.EmployeeID, notification.TypeRequestSubmitted))
	assert.Equal(t, 0, f.notifier.to(f.otherHOD.EmployeeID, notification.TypeRequestSubmitted))
	assert.Equal(t, 1, f.notifier.to(f.admin.EmployeeID, notification.TypeRequestSubmitted))

	req, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	require.NoError(t, err)
	assert.Equal(t, "pending", req.Outcome)
	assert.Equal(t, f.hod.EmployeeID, *req.Status["hod"].DecidedBy)

	req, err = f.svc.Decide(ctx, f.admin, req.ID, decide(user.RoleAdmin, "approved"))
	require.NoError(t, err)
	assert.Equal(t, "approved", req.Outcome)
	assert.Equal(t, 1, f.notifier.to(f.staff.EmployeeID, notification.TypeRequestApproved))
	assert.Equal(t, 2, f.notifier.to(f.staff.EmployeeID, notification.TypeRequestDecided))
}

func TestDecide_RedecisionKeepsLatest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, f.staff, approval.SubmitRequest{
		Type: "punch_missed", Date: "2025-08-08", PunchTime: "09:05", Direction: "in", Reason: "card",
	})
	require.NoError(t, err)

	remark := "late card"
	req, err = f.svc.Decide(ctx, f.hod, req.ID, approval.DecideRequest{Role: "hod", Decision: "rejected", Remark: &remark})
	require.NoError(t, err)
	assert.Equal(t, "rejected", req.Outcome)

	req, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	require.NoError(t, err)
	assert.Equal(t, "approved", req.Status["hod"].State)
	assert.Nil(t, req.Status["hod"].Remark)
	assert.Equal(t, "pending", req.Outcome)
}

func TestDecide_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, f.staff, leave("casual", "2025-08-12", "2025-08-12"))
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, f.admin, req.ID, decide(user.RoleHOD, "approved"))
	assert.ErrorIs(t, err, approval.ErrRoleMismatch)

	_, err = f.svc.Decide(ctx, f.ceo, req.ID, decide(user.RoleCEO, "approved"))
	assert.ErrorIs(t, err, approval.ErrRoleNotRequired)

	_, err = f.svc.Decide(ctx, f.hod, "00000000-0000-0000-0000-000000000000", decide(user.RoleHOD, "approved"))
	assert.ErrorIs(t, err, approval.ErrRequestNotFound)

	_, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "acknowledged"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDecide_OwnRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, f.admin, leave("casual", "2025-08-12", "2025-08-12"))
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, f.admin, req.ID, decide(user.RoleAdmin, "approved"))
	assert.ErrorIs(t, err, approval.ErrSelfDecision)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	got, err := f.svc.GetRequest(ctx, f.admin, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status["admin"].State)

	ceoReq, err := f.svc.Submit(ctx, f.ceo, approval.SubmitRequest{
		Type: "od", FromDate: "2025-08-20", ToDate: "2025-08-20", Purpose: "board meeting", Place: "Mumbai",
	})
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, f.ceo, ceoReq.ID, decide(user.RoleCEO, "approved"))
	assert.ErrorIs(t, err, approval.ErrSelfDecision)
}

func TestSubmit_ByHODGoesToCEO(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, f.hod, leave("casual", "2025-08-12", "2025-08-12"))
	require.NoError(t, err)
	assert.Equal(t, "not_required", req.Status["hod"].State)
	assert.Equal(t, "pending", req.Status["ceo"].State)
	assert.Equal(t, 0, f.notifier.to(f.hod.EmployeeID, notification.TypeRequestSubmitted))
	assert.Equal(t, 1, f.notifier.to(f.ceo.EmployeeID, notification.TypeRequestSubmitted))

	_, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	assert.ErrorIs(t, err, approval.ErrRoleNotRequired)
}

func TestSubmit_OnBehalf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	body := leave("casual", "2025-08-12", "2025-08-12")
	body.EmployeeID = f.staff.EmployeeID

	_, err := f.svc.Submit(ctx, f.trainee, body)
	assert.ErrorIs(t, err, approval.ErrSubmitForOther)

	req, err := f.svc.Submit(ctx, f.admin, body)
	require.NoError(t, err)
	assert.Equal(t, f.staff.EmployeeID, req.EmployeeID)
}

func TestSubmit_LeaveBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, f.trainee, leave("casual", "2025-08-12", "2025-08-12"))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.trainee, leave("casual", "2025-08-13", "2025-08-13"))
	assert.ErrorIs(t, err, approval.ErrInsufficientLeave)

	_, err = f.svc.Submit(ctx, f.trainee, leave("medical", "2025-08-13", "2025-08-13"))
	assert.ErrorIs(t, err, approval.ErrInsufficientLeave)

	_, err = f.svc.Submit(ctx, f.trainee, leave("loss_of_pay", "2025-08-13", "2025-08-14"))
	assert.NoError(t, err)

	_, err = f.svc.Decide(ctx, f.hod, first.ID, decide(user.RoleHOD, "rejected"))
	require.NoError(t, err)
	half := leave("casual", "2025-08-13", "2025-08-13")
	half.Session = "first_half"
	req, err := f.svc.Submit(ctx, f.trainee, half)
	require.NoError(t, err)
	assert.Equal(t, 0.5, req.Payload["days"])

	_, err = f.svc.Submit(ctx, f.trainee, leave("casual", "2025-08-17", "2025-08-17"))
	assert.ErrorIs(t, err, approval.ErrNoWorkingDays)
}

func TestSubmit_ConcurrentLeaveKeepsBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	days := []string{"2025-08-12", "2025-08-13", "2025-08-14", "2025-08-18"}
	errs := make([]error, len(days))
	var wg sync.WaitGroup
	for i, day := range days {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Submit(ctx, f.trainee, leave("casual", day, day))
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, approval.ErrInsufficientLeave)
	}
	assert.Equal(t, 1, accepted)

	list, err := f.svc.ListRequests(ctx, f.trainee, approval.RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
}

func TestSubmit_RestrictedHoliday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.holidays.CreateBatch(ctx, []holiday.Holiday{
		{Name: "Onam", Date: time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC), Type: holiday.HolidayTypeRestricted},
	})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.staff, leave("restricted_holiday", "2025-09-04", "2025-09-04"))
	assert.ErrorIs(t, err, approval.ErrNotRestrictedHoliday)

	_, err = f.svc.Submit(ctx, f.staff, leave("restricted_holiday", "2025-09-05", "2025-09-05"))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.trainee, leave("restricted_holiday", "2025-09-05", "2025-09-05"))
	assert.ErrorIs(t, err, approval.ErrInsufficientLeave)
}

func TestSubmit_ValidationStopsAtFirstField(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.staff, approval.SubmitRequest{Type: "od", FromDate: "bad"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "from_date", verrs[0].Field)
}

func TestCompensatoryApprovalIssuesGrantOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, f.staff, approval.SubmitRequest{
		Type: "compensatory", Date: "2025-08-10", Hours: validator.NumberString("2.5"), Reason: "Sunday maintenance",
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	require.NoError(t, err)
	_, err = f.grants.GetBySource(ctx, grant.SourceRequest, req.ID)
	assert.ErrorIs(t, err, grant.ErrGrantNotFound)

	_, err = f.svc.Decide(ctx, f.admin, req.ID, decide(user.RoleAdmin, "approved"))
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, f.admin, req.ID, decide(user.RoleAdmin, "approved"))
	require.NoError(t, err)

	grants, err := f.grants.ListByEmployee(ctx, f.staff.EmployeeID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.True(t, grants[0].Hours.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, req.ID, grants[0].SourceID)
}

func TestCompensatoryGrantFollowsLatestOutcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, f.staff, approval.SubmitRequest{
		Type: "compensatory", Date: "2025-08-10", Hours: validator.NumberString("3"), Reason: "Sunday maintenance",
	})
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, f.admin, req.ID, decide(user.RoleAdmin, "approved"))
	require.NoError(t, err)

	issued, err := f.grants.GetBySource(ctx, grant.SourceRequest, req.ID)
	require.NoError(t, err)

	resp, err := f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "rejected"))
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Outcome)

	claimable, err := f.grantSvc.ListClaimable(ctx, f.staff)
	require.NoError(t, err)
	assert.Empty(t, claimable)

	_, err = f.grantSvc.Claim(ctx, f.staff, issued.ID, grant.ClaimRequest{Project: "Line 3", Description: "retool"})
	assert.ErrorIs(t, err, grant.ErrSourceWithdrawn)
	assert.Equal(t, apperror.KindNotClaimable, apperror.KindOf(err))

	_, err = f.svc.Decide(ctx, f.hod, req.ID, decide(user.RoleHOD, "approved"))
	require.NoError(t, err)
	claimable, err = f.grantSvc.ListClaimable(ctx, f.staff)
	require.NoError(t, err)
	require.Len(t, claimable, 1)
	assert.Equal(t, issued.ID, claimable[0].ID)
}

func TestListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.svc.Submit(ctx, f.staff, leave("casual", "2025-08-12", "2025-08-12"))
	require.NoError(t, err)
	theirs, err := f.svc.Submit(ctx, f.trainee, approval.SubmitRequest{
		Type: "od", FromDate: "2025-08-20", ToDate: "2025-08-21", Purpose: "vendor audit", Place: "Chennai",
	})
	require.NoError(t, err)

	own, err := f.svc.ListRequests(ctx, f.staff, approval.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, own.Requests, 1)
	assert.Equal(t, mine.ID, own.Requests[0].ID)

	_, err = f.svc.GetRequest(ctx, f.staff, theirs.ID)
	assert.ErrorIs(t, err, approval.ErrRequestAccessDenied)

	inbox, err := f.svc.ListPendingFor(ctx, f.ceo, approval.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, inbox.Requests, 1)
	assert.Equal(t, theirs.ID, inbox.Requests[0].ID)

	_, err = f.svc.ListPendingFor(ctx, f.staff, approval.RequestFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	all, err := f.svc.ListRequests(ctx, f.admin, approval.RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)
}
