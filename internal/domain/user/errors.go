package user

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrUnauthenticated         = apperror.New(apperror.KindAuthorization, "acting user is missing")
	ErrInsufficientPermissions = apperror.New(apperror.KindAuthorization, "insufficient permissions")
)
