package grant

import (
	"context"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

type GrantService interface {
	// Issue stores g with a deadline of now plus the claim window unless one is
	// set. Issuing twice for one source returns the first grant.
	Issue(ctx context.Context, g Grant) (Grant, error)

	GetGrant(ctx context.Context, actor user.ActingUser, grantID string) (GrantResponse, error)
	ListMine(ctx context.Context, actor user.ActingUser) ([]GrantResponse, error)
	ListClaimable(ctx context.Context, actor user.ActingUser) ([]GrantResponse, error)
	Claim(ctx context.Context, actor user.ActingUser, grantID string, req ClaimRequest) (GrantResponse, error)

	// SendExpiryReminders notifies owners of grants expiring within the reminder
	// lead time and returns how many were sent.
	SendExpiryReminders(ctx context.Context) (int, error)
}
