package attendance

import "github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"

var (
	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrAlreadyRecorded    = apperror.New(apperror.KindConflict, "attendance already recorded for this date")
	ErrPunchForOther      = apperror.New(apperror.KindAuthorization, "only admin can record punches for another employee")
	ErrFuturePunch        = apperror.New(apperror.KindValidation, "cannot record attendance for a future date")
)
