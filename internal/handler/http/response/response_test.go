package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var env Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestHandleError_StatusAndCodeByKind(t *testing.T) {
	tests := []struct {
		kind   apperror.Kind
		status int
	}{
		{apperror.KindValidation, http.StatusUnprocessableEntity},
		{apperror.KindAuthorization, http.StatusForbidden},
		{apperror.KindNotFound, http.StatusNotFound},
		{apperror.KindExpired, http.StatusGone},
		{apperror.KindAlreadyClaimed, http.StatusConflict},
		{apperror.KindConflict, http.StatusConflict},
		{apperror.KindNotClaimable, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, fmt.Errorf("wrapped: %w", apperror.New(tt.kind, "boom")))

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, string(tt.kind), env.Error.Code)
			assert.Equal(t, "wrapped: boom", env.Error.Message)
		})
	}
}

func TestHandleError_FieldDetailsAndInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.Fail("project", "project is required"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "project is required", env.Error.Details["project"])

	rec = httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("db down"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env = decode(t, rec)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "db down")
}

func TestForbiddenSharesAuthorizationCode(t *testing.T) {
	rec := httptest.NewRecorder()
	Forbidden(rec, "no")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "AUTHORIZATION_ERROR", decode(t, rec).Error.Code)
}

func TestPaginate(t *testing.T) {
	assert.Equal(t, 3, Paginate(1, 10, 21).TotalPages)
	assert.Equal(t, 0, Paginate(1, 0, 21).TotalPages)
}
