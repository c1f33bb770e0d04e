package approval

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

var typeTitles = map[approval.Type]string{
	approval.TypeLeave:        "Leave",
	approval.TypeOD:           "On duty",
	approval.TypeCompensatory: "Compensatory",
	approval.TypePunchMissed:  "Punch missed",
}

// notifyApprovers tells every holder of a required role that a request is
// waiting. HODs only hear about their own department.
func (s *approvalService) notifyApprovers(ctx context.Context, submitter employee.Employee, r approval.Request) {
	title := fmt.Sprintf("%s request submitted", typeTitles[r.Type])
	sender := submitter.ID

	for _, role := range r.Status.RequiredRoles() {
		filter := employee.EmployeeFilter{Role: &role}
		if role == user.RoleHOD {
			dept := submitter.Department
			filter.Department = &dept
		}
		approvers, _, err := s.employees.List(ctx, filter)
		if err != nil {
			s.logger.Warn("approver lookup failed", "request_id", r.ID, "role", role, "error", err)
			continue
		}
		for _, a := range approvers {
			if a.ID == submitter.ID {
				continue
			}
			s.notifier.Notify(ctx, notification.CreateNotificationRequest{
				RecipientID: a.ID,
				SenderID:    &sender,
				Type:        notification.TypeRequestSubmitted,
				Title:       title,
				Message:     fmt.Sprintf("%s (%s) is waiting for your %s decision.", submitter.Name, submitter.Code, role),
				Data:        map[string]any{"request_id": r.ID, "role": role},
			})
		}
	}
}

// notifyOwner reports one decision, plus the final outcome once there is one.
func (s *approvalService) notifyOwner(ctx context.Context, r approval.Request, role user.Role, decision approval.Decision) {
	title := typeTitles[r.Type]
	data := map[string]any{"request_id": r.ID, "role": role, "decision": decision}

	s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: r.EmployeeID,
		Type:        notification.TypeRequestDecided,
		Title:       fmt.Sprintf("%s request %s by %s", title, decision, role),
		Message:     fmt.Sprintf("Your %s request was %s by %s.", r.Type, decision, role),
		Data:        data,
	})

	var kind notification.NotificationType
	switch r.Outcome() {
	case approval.OutcomeApproved:
		kind = notification.TypeRequestApproved
	case approval.OutcomeRejected:
		kind = notification.TypeRequestRejected
	default:
		return
	}
	s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: r.EmployeeID,
		Type:        kind,
		Title:       fmt.Sprintf("%s request %s", title, r.Outcome()),
		Message:     fmt.Sprintf("Your %s request is now %s.", r.Type, r.Outcome()),
		Data:        map[string]any{"request_id": r.ID},
	})
}
