package holiday

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrNothingToImport = apperror.New(apperror.KindValidation, "no valid holiday rows to import")
)
