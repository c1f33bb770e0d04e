package user

import (
	"context"
	"strings"
)

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleHOD      Role = "hod"      // Head of department
	RoleCEO      Role = "ceo"
	RoleAdmin    Role = "admin" // HR administration
)

// ApproverRoles lists the roles that can hold a decision slot, in chain order.
var ApproverRoles = [...]Role{RoleHOD, RoleCEO, RoleAdmin}

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEmployee:
		return RoleEmployee, true
	case RoleHOD:
		return RoleHOD, true
	case RoleCEO:
		return RoleCEO, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// IsApprover reports whether the role can decide requests.
func (r Role) IsApprover() bool {
	for _, a := range ApproverRoles {
		if a == r {
			return true
		}
	}
	return false
}

// ActingUser is the identity the transport layer hands to every workflow call.
// The workflow trusts it and performs no authentication of its own.
type ActingUser struct {
	EmployeeID string
	Role       Role
}

func (u ActingUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type ctxKey struct{}

// WithActingUser stores u in ctx.
func WithActingUser(ctx context.Context, u ActingUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the acting user set by the auth middleware.
func FromContext(ctx context.Context) (ActingUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(ActingUser)
	return u, ok && u.EmployeeID != ""
}
