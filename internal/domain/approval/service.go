package approval

import (
	"context"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
)

type ApprovalService interface {
	Submit(ctx context.Context, actor user.ActingUser, req SubmitRequest) (RequestResponse, error)
	Decide(ctx context.Context, actor user.ActingUser, requestID string, req DecideRequest) (RequestResponse, error)

	GetRequest(ctx context.Context, actor user.ActingUser, requestID string) (RequestResponse, error)
	// ListRequests shows everything to approvers and only the actor's own requests to employees.
	ListRequests(ctx context.Context, actor user.ActingUser, filter RequestFilter) (ListRequestResponse, error)
	ListPendingFor(ctx context.Context, actor user.ActingUser, filter RequestFilter) (ListRequestResponse, error)
}
