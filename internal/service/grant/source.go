package grant

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
)

type requestSourceVerifier struct {
	requests approval.RequestRepository
}

// NewRequestSourceVerifier keeps request-sourced grants tied to their request:
// once the request is no longer Approved the grant is withdrawn. Attendance
// grants always stand.
func NewRequestSourceVerifier(requests approval.RequestRepository) grant.SourceVerifier {
	return &requestSourceVerifier{requests: requests}
}

func (v *requestSourceVerifier) SourceStands(ctx context.Context, g grant.Grant) (bool, error) {
	if g.Source != grant.SourceRequest {
		return true, nil
	}
	r, err := v.requests.GetByID(ctx, g.SourceID)
	if errors.Is(err, approval.ErrRequestNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.Outcome() == approval.OutcomeApproved, nil
}
