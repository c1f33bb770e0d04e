// Package response writes the JSON envelope every API route returns:
//
//	{"success": bool, "message": "...", "data": ..., "error": {...}, "meta": {...}}
//
// Failed calls carry error.code set to an apperror.Kind and a status picked
// from that kind:
//
//	VALIDATION_ERROR       422  malformed or out-of-policy input, with per-field details
//	AUTHORIZATION_ERROR    403  wrong role, self decision, someone else's grant
//	NOT_FOUND              404  unknown request, grant or employee
//	EXPIRED                410  claim window closed
//	ALREADY_CLAIMED        409  grant claimed before
//	CONFLICT               409  lost a concurrent claim
//	NOT_CLAIMABLE          422  under the hour minimum or source withdrawn
//	INTERNAL_SERVER_ERROR  500  anything unclassified
//
// BAD_REQUEST and UNAUTHORIZED are transport-level and never come from a domain error.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

// ErrorDetail.Details maps a request field to its first failure.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	TotalItems int64 `json:"total_items,omitempty"`
	TotalPages int   `json:"total_pages,omitempty"`
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindValidation:     http.StatusUnprocessableEntity,
	apperror.KindAuthorization:  http.StatusForbidden,
	apperror.KindNotFound:       http.StatusNotFound,
	apperror.KindExpired:        http.StatusGone,
	apperror.KindAlreadyClaimed: http.StatusConflict,
	apperror.KindConflict:       http.StatusConflict,
	apperror.KindNotClaimable:   http.StatusUnprocessableEntity,
	apperror.KindInternal:       http.StatusInternalServerError,
}

// StatusFor returns the HTTP status a kind is served with. Unknown kinds are 500.
func StatusFor(kind apperror.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMeta serves list routes; build meta with Paginate.
func SuccessWithMeta(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Kind writes a failed envelope for a domain error kind.
func Kind(w http.ResponseWriter, kind apperror.Kind, message string, details map[string]string) {
	writeJSON(w, StatusFor(kind), Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    string(kind),
			Message: message,
			Details: details,
		},
	})
}

// BadRequest is for bodies that do not decode at all.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "BAD_REQUEST",
			Message: message,
			Details: details,
		},
	})
}

// Unauthorized is for a missing, expired or unverifiable bearer token.
func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}

// Forbidden is the route-level permission denial. It shares the domain's
// authorization code so clients see one code for every 403.
func Forbidden(w http.ResponseWriter, message string) {
	Kind(w, apperror.KindAuthorization, message, nil)
}

// Paginate builds list metadata. TotalPages rounds up and stays zero when limit is.
func Paginate(page, limit int, total int64) *Meta {
	meta := &Meta{Page: page, Limit: limit, TotalItems: total}
	if limit > 0 {
		meta.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return meta
}
