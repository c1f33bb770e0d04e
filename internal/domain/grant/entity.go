package grant

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/shopspring/decimal"
)

// Source is what triggered a grant. (Source, SourceID) is unique.
type Source string

const (
	SourceAttendance Source = "attendance"
	SourceRequest    Source = "request"
)

// Grant is a compensatory-hours grant the employee may claim once before its deadline.
type Grant struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Hours         decimal.Decimal
	ClaimDeadline *time.Time // nil never expires
	Claimed       bool
	Claim         *Claim
	Source        Source
	SourceID      string
	CreatedAt     time.Time
}

type Claim struct {
	Project     string
	Description string
	ClaimedAt   time.Time
}

type WindowState string

const (
	WindowRemaining WindowState = "remaining"
	WindowExpired   WindowState = "expired"
	WindowUnbounded WindowState = "unbounded"
)

// Window is the claim window as seen at one instant.
type Window struct {
	State WindowState
	Left  time.Duration // set only when State is WindowRemaining
}

// RemainingTime derives the window from the deadline and now. Expiry is never stored.
func RemainingTime(g Grant, now time.Time) Window {
	if g.ClaimDeadline == nil {
		return Window{State: WindowUnbounded}
	}
	left := g.ClaimDeadline.Sub(now)
	if left <= 0 {
		return Window{State: WindowExpired}
	}
	return Window{State: WindowRemaining, Left: left}
}

// MeetsMinimum reports whether the grant is large enough to be claimed at all.
func (g Grant) MeetsMinimum() bool {
	return g.Hours.GreaterThanOrEqual(policy.MinClaimableHours)
}

// IsClaimable is true for unclaimed, unexpired grants of at least the minimum hours.
func (g Grant) IsClaimable(now time.Time) bool {
	return !g.Claimed && g.MeetsMinimum() && RemainingTime(g, now).State != WindowExpired
}
