package approval

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrRequestNotFound      = apperror.New(apperror.KindNotFound, "request not found")
	ErrRoleNotRequired      = apperror.New(apperror.KindAuthorization, "role is not an approver of this request")
	ErrRoleMismatch         = apperror.New(apperror.KindAuthorization, "acting user does not hold the deciding role")
	ErrSelfDecision         = apperror.New(apperror.KindAuthorization, "cannot decide on your own request")
	ErrSubmitForOther       = apperror.New(apperror.KindAuthorization, "only admin can submit on behalf of another employee")
	ErrRequestAccessDenied  = apperror.New(apperror.KindAuthorization, "not allowed to view this request")
	ErrInsufficientLeave    = apperror.New(apperror.KindValidation, "insufficient leave balance")
	ErrNotRestrictedHoliday = apperror.New(apperror.KindValidation, "restricted holiday leave must fall on a restricted holiday")
	ErrNoWorkingDays        = apperror.New(apperror.KindValidation, "leave covers no working days")
)
