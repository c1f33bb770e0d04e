package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses by their kind.
func HandleError(w http.ResponseWriter, err error) {
	// Field-level validation carries details
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Kind(w, apperror.KindValidation, "Validation failed", validationErrs.ToMap())
		return
	}

	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.Error("unhandled error", "error", err)
		Kind(w, kind, "An unexpected error occurred", nil)
		return
	}
	Kind(w, kind, err.Error(), nil)
}
