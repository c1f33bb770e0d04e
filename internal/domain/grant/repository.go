package grant

import (
	"context"
	"time"
)

type GrantRepository interface {
	// Create fails with ErrDuplicateSource when (source, source_id) exists.
	Create(ctx context.Context, g Grant) (Grant, error)
	GetByID(ctx context.Context, id string) (Grant, error)
	GetBySource(ctx context.Context, source Source, sourceID string) (Grant, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Grant, error)

	// MarkClaimed flips claimed false->true only while the grant is unclaimed and
	// its deadline is after now. It reports whether this call won.
	MarkClaimed(ctx context.Context, id string, claim Claim, now time.Time) (bool, error)

	// ListDeadlineBetween returns unclaimed grants whose deadline is in (from, to].
	ListDeadlineBetween(ctx context.Context, from, to time.Time) ([]Grant, error)
}

// SourceVerifier reports whether the record that triggered a grant still stands.
// A grant whose source no longer stands cannot be claimed.
type SourceVerifier interface {
	SourceStands(ctx context.Context, g Grant) (bool, error)
}
