package approval

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

type SlotState string

const (
	SlotNotRequired SlotState = "not_required"
	SlotPending     SlotState = "pending"
	SlotApproved    SlotState = "approved"
	SlotRejected    SlotState = "rejected"
)

// Decision is what an approver records. There is no "acknowledged".
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func ParseDecision(s string) (Decision, bool) {
	switch Decision(strings.ToLower(strings.TrimSpace(s))) {
	case DecisionApproved, "approve":
		return DecisionApproved, true
	case DecisionRejected, "reject":
		return DecisionRejected, true
	}
	return "", false
}

func (d Decision) State() SlotState {
	if d == DecisionApproved {
		return SlotApproved
	}
	return SlotRejected
}

// Slot is one approver's position on a request.
type Slot struct {
	State     SlotState
	DecidedBy *string
	DecidedAt *time.Time
	Remark    *string
}

func (s Slot) Required() bool {
	return s.State != SlotNotRequired && s.State != ""
}

// Status has one slot per approver role. Its shape never changes; roles a
// request does not need stay NotRequired.
type Status struct {
	HOD   Slot
	CEO   Slot
	Admin Slot
}

// NewStatus marks the given roles Pending and every other role NotRequired.
func NewStatus(required []user.Role) Status {
	s := Status{
		HOD:   Slot{State: SlotNotRequired},
		CEO:   Slot{State: SlotNotRequired},
		Admin: Slot{State: SlotNotRequired},
	}
	for _, r := range required {
		if slot := s.slot(r); slot != nil {
			slot.State = SlotPending
		}
	}
	return s
}

// Slot returns the slot for role. Non-approver roles get a NotRequired slot.
func (s Status) Slot(role user.Role) Slot {
	if slot := s.slot(role); slot != nil {
		return *slot
	}
	return Slot{State: SlotNotRequired}
}

// WithSlot returns a copy of s with role's slot replaced.
func (s Status) WithSlot(role user.Role, slot Slot) Status {
	if p := s.slot(role); p != nil {
		*p = slot
	}
	return s
}

func (s *Status) slot(role user.Role) *Slot {
	switch role {
	case user.RoleHOD:
		return &s.HOD
	case user.RoleCEO:
		return &s.CEO
	case user.RoleAdmin:
		return &s.Admin
	}
	return nil
}

// RequiredRoles lists the roles whose slot is not NotRequired, in chain order.
func (s Status) RequiredRoles() []user.Role {
	var roles []user.Role
	for _, r := range user.ApproverRoles {
		if s.Slot(r).Required() {
			roles = append(roles, r)
		}
	}
	return roles
}

type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

func ParseOutcome(s string) (Outcome, bool) {
	switch Outcome(strings.ToLower(strings.TrimSpace(s))) {
	case OutcomePending:
		return OutcomePending, true
	case OutcomeApproved:
		return OutcomeApproved, true
	case OutcomeRejected:
		return OutcomeRejected, true
	}
	return "", false
}

// Aggregate reduces the required slots: any rejection rejects, all approvals
// approve, anything else is pending. A status with no required slot is pending.
func Aggregate(s Status) Outcome {
	required := 0
	approved := 0
	for _, r := range user.ApproverRoles {
		slot := s.Slot(r)
		if !slot.Required() {
			continue
		}
		required++
		switch slot.State {
		case SlotRejected:
			return OutcomeRejected
		case SlotApproved:
			approved++
		}
	}
	if required > 0 && approved == required {
		return OutcomeApproved
	}
	return OutcomePending
}
