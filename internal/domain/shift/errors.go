package shift

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrShiftNotFound      = apperror.New(apperror.KindNotFound, "shift not found")
	ErrShiftNameExists    = apperror.New(apperror.KindConflict, "shift name already exists")
	ErrAssignmentNotFound = apperror.New(apperror.KindNotFound, "employee has no shift assignment")
)
