package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-workflow-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordPunch(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// RecordPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordPunch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req attendance.RecordPunchRequest
	if !decodeJSON(w, r, "RecordPunch", &req) {
		return
	}

	result, err := h.attendanceService.RecordPunch(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	filter := attendance.AttendanceFilter{
		From: optionalQuery(r, "from"),
		To:   optionalQuery(r, "to"),
	}

	records, err := h.attendanceService.GetMyAttendance(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
