package approval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
)

type approvalService struct {
	requests  approval.RequestRepository
	employees employee.EmployeeRepository
	holidays  holiday.HolidayRepository
	grants    grant.GrantService
	notifier  notification.Notifier
	clock     clock.Clock
	logger    *slog.Logger

	// leaveLocks serialises the balance check and insert per employee.
	leaveLocks keyedMutex
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func NewApprovalService(
	requests approval.RequestRepository,
	employees employee.EmployeeRepository,
	holidays holiday.HolidayRepository,
	grants grant.GrantService,
	notifier notification.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) approval.ApprovalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &approvalService{
		requests:  requests,
		employees: employees,
		holidays:  holidays,
		grants:    grants,
		notifier:  notifier,
		clock:     clk,
		logger:    logger.With("component", "approval"),
	}
}

// Submit implements approval.ApprovalService.
func (s *approvalService) Submit(ctx context.Context, actor user.ActingUser, req approval.SubmitRequest) (approval.RequestResponse, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !actor.IsAdmin() {
		return approval.RequestResponse{}, approval.ErrSubmitForOther
	}

	if err := req.Validate(); err != nil {
		return approval.RequestResponse{}, err
	}

	submitter, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return approval.RequestResponse{}, err
	}

	request := req.ToRequest(submitter.ID)
	if request.Leave != nil {
		unlock := s.leaveLocks.lock(submitter.ID)
		defer unlock()
		if err := s.checkLeave(ctx, submitter, request.Leave); err != nil {
			return approval.RequestResponse{}, err
		}
	}
	request.Status = approval.NewStatus(approval.RequiredRoles(request.Type, submitter.Role))

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return approval.RequestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	s.logger.Info("request submitted",
		"request_id", created.ID, "employee_id", created.EmployeeID, "type", created.Type,
		"actor_id", actor.EmployeeID)
	s.notifyApprovers(ctx, submitter, created)

	return approval.ToResponse(created), nil
}

// checkLeave fills in the working days and enforces the yearly entitlement.
func (s *approvalService) checkLeave(ctx context.Context, submitter employee.Employee, leave *approval.LeavePayload) error {
	cal, err := policy.LoadCalendar(ctx, s.holidays, leave.FromDate, leave.ToDate)
	if err != nil {
		return err
	}

	if leave.Category == policy.LeaveCategoryRestrictedHoliday {
		for d := leave.FromDate; !d.After(leave.ToDate); d = d.AddDate(0, 0, 1) {
			if !cal.IsRestrictedHoliday(d) {
				return approval.ErrNotRestrictedHoliday
			}
		}
	}

	leave.Days = policy.WorkingDays(leave.FromDate, leave.ToDate, leave.Session, cal)
	if leave.Days == 0 {
		return approval.ErrNoWorkingDays
	}

	allowed, unlimited := policy.LeaveEntitlement(submitter.EmployeeType).Allowed(leave.Category)
	if unlimited {
		return nil
	}
	used, err := s.requests.SumLeaveDays(ctx, submitter.ID, leave.Category, leave.FromDate.Year())
	if err != nil {
		return fmt.Errorf("failed to sum leave days: %w", err)
	}
	if used+leave.Days > allowed {
		return approval.ErrInsufficientLeave
	}
	return nil
}

// Decide implements approval.ApprovalService.
func (s *approvalService) Decide(ctx context.Context, actor user.ActingUser, requestID string, req approval.DecideRequest) (approval.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.RequestResponse{}, err
	}
	role, _ := user.ParseRole(req.Role)
	decision, _ := approval.ParseDecision(req.Decision)

	if actor.Role != role {
		return approval.RequestResponse{}, approval.ErrRoleMismatch
	}

	current, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return approval.RequestResponse{}, err
	}
	if current.EmployeeID == actor.EmployeeID {
		return approval.RequestResponse{}, approval.ErrSelfDecision
	}

	now := s.clock.Now()
	decidedBy := actor.EmployeeID
	slot := approval.Slot{
		State:     decision.State(),
		DecidedBy: &decidedBy,
		DecidedAt: &now,
		Remark:    req.Remark,
	}

	updated, err := s.requests.SetDecision(ctx, requestID, role, slot)
	if err != nil {
		return approval.RequestResponse{}, err
	}

	outcome := updated.Outcome()
	s.logger.Info("request decided",
		"request_id", updated.ID, "role", role, "decision", decision,
		"decided_by", actor.EmployeeID, "outcome", outcome)

	s.notifyOwner(ctx, updated, role, decision)

	if updated.Type == approval.TypeCompensatory && outcome == approval.OutcomeApproved {
		if _, err := s.grants.Issue(ctx, grant.Grant{
			EmployeeID: updated.EmployeeID,
			Date:       updated.Compensatory.Date,
			Hours:      updated.Compensatory.Hours,
			Source:     grant.SourceRequest,
			SourceID:   updated.ID,
		}); err != nil {
			return approval.RequestResponse{}, fmt.Errorf("decision recorded but grant issue failed: %w", err)
		}
	}

	return approval.ToResponse(updated), nil
}

// GetRequest is open to the owner and to approvers.
func (s *approvalService) GetRequest(ctx context.Context, actor user.ActingUser, requestID string) (approval.RequestResponse, error) {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return approval.RequestResponse{}, err
	}
	if r.EmployeeID != actor.EmployeeID && !actor.Role.IsApprover() {
		return approval.RequestResponse{}, approval.ErrRequestAccessDenied
	}
	return approval.ToResponse(r), nil
}

func (s *approvalService) ListRequests(ctx context.Context, actor user.ActingUser, filter approval.RequestFilter) (approval.ListRequestResponse, error) {
	if !actor.Role.IsApprover() {
		own := actor.EmployeeID
		filter.EmployeeID = &own
	}
	return s.list(ctx, filter)
}

func (s *approvalService) ListPendingFor(ctx context.Context, actor user.ActingUser, filter approval.RequestFilter) (approval.ListRequestResponse, error) {
	if !actor.Role.IsApprover() {
		return approval.ListRequestResponse{}, user.ErrInsufficientPermissions
	}
	role := actor.Role
	filter.PendingFor = &role
	return s.list(ctx, filter)
}

func (s *approvalService) list(ctx context.Context, filter approval.RequestFilter) (approval.ListRequestResponse, error) {
	filter.Normalize()

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return approval.ListRequestResponse{}, err
	}

	out := make([]approval.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, approval.ToResponse(r))
	}
	return approval.ListRequestResponse{
		Requests:   out,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
