package approval

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Type is the kind of request an employee can raise.
type Type string

const (
	TypeLeave        Type = "leave"
	TypeOD           Type = "od" // on duty, away from the plant
	TypeCompensatory Type = "compensatory"
	TypePunchMissed  Type = "punch_missed"
)

var TypeValues = []string{
	string(TypeLeave),
	string(TypeOD),
	string(TypeCompensatory),
	string(TypePunchMissed),
}

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range TypeValues {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

// Request is a Leave, OD, Compensatory or PunchMissed request. Exactly one
// payload pointer is set, matching Type.
type Request struct {
	ID          string
	EmployeeID  string
	Type        Type
	CompositeID *string

	Leave        *LeavePayload
	OD           *ODPayload
	Compensatory *CompensatoryPayload
	PunchMissed  *PunchMissedPayload

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outcome is the aggregate of the required slots.
func (r Request) Outcome() Outcome {
	return Aggregate(r.Status)
}

// Span returns the first and last calendar date the request covers.
func (r Request) Span() (from, to time.Time) {
	switch {
	case r.Leave != nil:
		return r.Leave.FromDate, r.Leave.ToDate
	case r.OD != nil:
		return r.OD.FromDate, r.OD.ToDate
	case r.Compensatory != nil:
		return r.Compensatory.Date, r.Compensatory.Date
	case r.PunchMissed != nil:
		return r.PunchMissed.Date, r.PunchMissed.Date
	}
	return time.Time{}, time.Time{}
}

type LeavePayload struct {
	Category policy.LeaveCategory `json:"category"`
	FromDate time.Time            `json:"from_date"`
	ToDate   time.Time            `json:"to_date"`
	Session  policy.Session       `json:"session"`
	Reason   string               `json:"reason"`
	Days     float64              `json:"days"`
}

type ODPayload struct {
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
	FromTime *string   `json:"from_time,omitempty"`
	ToTime   *string   `json:"to_time,omitempty"`
	Purpose  string    `json:"purpose"`
	Place    string    `json:"place"`
}

type CompensatoryPayload struct {
	Date   time.Time       `json:"date"`
	Hours  decimal.Decimal `json:"hours"`
	Reason string          `json:"reason"`
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

type PunchMissedPayload struct {
	Date      time.Time `json:"date"`
	PunchTime string    `json:"punch_time"`
	Direction Direction `json:"direction"`
	Reason    string    `json:"reason"`
}

// RequiredRoles returns the approvers a request of type t needs. A HOD never
// approves their own request; the CEO takes that slot instead.
func RequiredRoles(t Type, submitter user.Role) []user.Role {
	var roles []user.Role
	switch t {
	case TypeOD:
		roles = []user.Role{user.RoleHOD, user.RoleCEO, user.RoleAdmin}
	default:
		roles = []user.Role{user.RoleHOD, user.RoleAdmin}
	}
	if submitter != user.RoleHOD {
		return roles
	}

	out := make([]user.Role, 0, len(roles))
	seen := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		if r == user.RoleHOD {
			r = user.RoleCEO
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
