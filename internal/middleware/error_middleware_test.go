package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"item not found", apperrors.ErrItemNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"no signatory record", apperrors.ErrSignatoryNotFound, 404, dto.ErrorCodeSignatoryMissing},
		{"clearance not found", apperrors.ErrClearanceNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"inactive signatory", apperrors.ErrSignatoryInactive, 403, dto.ErrorCodeForbidden},
		{"locked clearance", apperrors.ErrClearanceLocked, 403, dto.ErrorCodeClearanceLocked},
		{"disabled account", apperrors.ErrAccountDisabled, 403, dto.ErrorCodeAccountDisabled},
		{"already approved", apperrors.ErrAlreadyApproved, 422, dto.ErrorCodeAlreadyApproved},
		{"org has admin", apperrors.ErrOrganizationHasAdmin, 422, dto.ErrorCodeResourceInvalid},
		{"current term delete", apperrors.ErrTermIsCurrent, 422, dto.ErrorCodeResourceInvalid},
		{"self deletion", apperrors.ErrSelfDeletion, 422, dto.ErrorCodeResourceInvalid},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate student number", apperrors.ErrStudentNumberAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"unknown error", errors.New("pool exhausted"), 500, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorValidationMessage(t *testing.T) {
	status, body := handleError(t, apperrors.NewValidationError("one or more item ids do not exist"))

	assert.Equal(t, 422, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "one or more item ids do not exist", body.Error.Message)
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := handleError(t, errors.New("connect: connection refused"))

	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, "connection refused")
}
