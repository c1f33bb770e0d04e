package employee

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound   = apperror.New(apperror.KindNotFound, "employee not found")
	ErrEmployeeCodeExists = apperror.New(apperror.KindConflict, "employee code already exists")
)
