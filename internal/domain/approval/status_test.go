package approval

import (
	"testing"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

var decidedStates = []SlotState{SlotPending, SlotApproved, SlotRejected}

// expectedOutcome is the reference reduction the exhaustive tests compare against.
func expectedOutcome(states []SlotState) Outcome {
	allApproved := true
	for _, s := range states {
		if s == SlotRejected {
			return OutcomeRejected
		}
		if s != SlotApproved {
			allApproved = false
		}
	}
	if allApproved {
		return OutcomeApproved
	}
	return OutcomePending
}

func combinations(n int) [][]SlotState {
	if n == 0 {
		return [][]SlotState{{}}
	}
	var out [][]SlotState
	for _, rest := range combinations(n - 1) {
		for _, s := range decidedStates {
			combo := append(append([]SlotState{}, rest...), s)
			out = append(out, combo)
		}
	}
	return out
}

func TestAggregate_Exhaustive(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		roles []user.Role
	}{
		{"two roles", TypeLeave, []user.Role{user.RoleHOD, user.RoleAdmin}},
		{"three roles", TypeOD, []user.Role{user.RoleHOD, user.RoleCEO, user.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.roles, RequiredRoles(tt.typ, user.RoleEmployee))

			combos := combinations(len(tt.roles))
			assert.Len(t, combos, pow3(len(tt.roles)))
			for _, combo := range combos {
				status := NewStatus(tt.roles)
				for i, role := range tt.roles {
					status = status.WithSlot(role, Slot{State: combo[i]})
				}
				assert.Equal(t, expectedOutcome(combo), Aggregate(status), "%v", combo)
			}
		})
	}
}

func pow3(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}

func TestAggregate_IgnoresNotRequiredSlots(t *testing.T) {
	status := NewStatus([]user.Role{user.RoleHOD, user.RoleAdmin})
	status = status.WithSlot(user.RoleHOD, Slot{State: SlotApproved})
	status = status.WithSlot(user.RoleAdmin, Slot{State: SlotApproved})

	assert.Equal(t, SlotNotRequired, status.CEO.State)
	assert.Equal(t, OutcomeApproved, Aggregate(status))
	assert.Equal(t, OutcomePending, Aggregate(Status{}))
}

func TestAggregate_LeaveWalkthrough(t *testing.T) {
	status := NewStatus(RequiredRoles(TypeLeave, user.RoleEmployee))
	assert.Equal(t, OutcomePending, Aggregate(status))

	status = status.WithSlot(user.RoleHOD, Slot{State: SlotApproved})
	assert.Equal(t, OutcomePending, Aggregate(status))

	status = status.WithSlot(user.RoleAdmin, Slot{State: SlotApproved})
	assert.Equal(t, OutcomeApproved, Aggregate(status))
}

func TestRequiredRoles(t *testing.T) {
	assert.Equal(t, []user.Role{user.RoleHOD, user.RoleAdmin}, RequiredRoles(TypeCompensatory, user.RoleEmployee))
	assert.Equal(t, []user.Role{user.RoleHOD, user.RoleAdmin}, RequiredRoles(TypePunchMissed, user.RoleAdmin))
	assert.Equal(t, []user.Role{user.RoleCEO, user.RoleAdmin}, RequiredRoles(TypeLeave, user.RoleHOD))
	assert.Equal(t, []user.Role{user.RoleCEO, user.RoleAdmin}, RequiredRoles(TypeOD, user.RoleHOD))
}

func TestStatus_RequiredRoles(t *testing.T) {
	status := NewStatus([]user.Role{user.RoleAdmin, user.RoleHOD})
	assert.Equal(t, []user.Role{user.RoleHOD, user.RoleAdmin}, status.RequiredRoles())
	assert.Equal(t, SlotNotRequired, status.Slot(user.RoleEmployee).State)
}
