package grant

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrGrantNotFound   = apperror.New(apperror.KindNotFound, "compensatory grant not found")
	ErrNotGrantOwner   = apperror.New(apperror.KindAuthorization, "only the grant owner can claim it")
	ErrGrantAccess     = apperror.New(apperror.KindAuthorization, "not allowed to view this grant")
	ErrAlreadyClaimed  = apperror.New(apperror.KindAlreadyClaimed, "compensatory grant already claimed")
	ErrGrantExpired    = apperror.New(apperror.KindExpired, "claim window has expired")
	ErrNotClaimable    = apperror.New(apperror.KindNotClaimable, "grants under one hour cannot be claimed")
	ErrSourceWithdrawn = apperror.New(apperror.KindNotClaimable, "the request behind this grant is no longer approved")
	ErrClaimConflict   = apperror.New(apperror.KindConflict, "grant changed while claiming, reload and retry")
	ErrDuplicateSource = apperror.New(apperror.KindConflict, "a grant already exists for this source")
)
