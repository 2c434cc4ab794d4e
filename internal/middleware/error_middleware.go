package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the response taxonomy. Ownership
// failures surface as plain not-found responses: an item assigned to another
// signatory is indistinguishable from one that does not exist.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404: missing or out-of-scope resources
	case errors.Is(err, apperrors.ErrItemNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Clearance item not found")
	case errors.Is(err, apperrors.ErrSignatoryNotFound):
		respond(c, 404, dto.ErrorCodeSignatoryMissing, "No signatory record for this account")
	case errors.Is(err, apperrors.ErrClearanceNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Clearance not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrOrganizationNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Organization not found")
	case errors.Is(err, apperrors.ErrTermNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Academic term not found")
	case errors.Is(err, apperrors.ErrSysAdminNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "System admin not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 403: authenticated but not allowed
	case errors.Is(err, apperrors.ErrSignatoryInactive):
		respond(c, 403, dto.ErrorCodeForbidden, "Signatory account has been deactivated")
	case errors.Is(err, apperrors.ErrClearanceLocked):
		respond(c, 403, dto.ErrorCodeClearanceLocked, "Clearance is locked and cannot be modified")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, 403, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, 403, dto.ErrorCodeForbidden, "Permission denied")

	// 422: understood but violates a workflow rule
	case errors.Is(err, apperrors.ErrAlreadyApproved):
		respond(c, 422, dto.ErrorCodeAlreadyApproved, "Clearance item has already been approved")
	case errors.Is(err, apperrors.ErrOrganizationHasAdmin):
		respond(c, 422, dto.ErrorCodeResourceInvalid, "Organization already has an admin assigned")
	case errors.Is(err, apperrors.ErrOrganizationHasRelations):
		respond(c, 422, dto.ErrorCodeResourceInvalid, "Organization has associated data and cannot be deleted")
	case errors.Is(err, apperrors.ErrTermIsCurrent):
		respond(c, 422, dto.ErrorCodeResourceInvalid, "The current active term cannot be deleted")
	case errors.Is(err, apperrors.ErrTermHasClearances):
		respond(c, 422, dto.ErrorCodeResourceInvalid, "Academic term has existing clearances and cannot be deleted")
	case errors.Is(err, apperrors.ErrSelfDeletion):
		respond(c, 422, dto.ErrorCodeResourceInvalid, "Cannot delete own account")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondValidation(c, err)

	// 409: unique constraint conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "Username already exists")
	case errors.Is(err, apperrors.ErrStudentNumberAlreadyExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "Student number already exists")
	case errors.Is(err, apperrors.ErrOrgCodeAlreadyExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "Organization code already exists")

	// 401: authentication failures
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, 401, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, 401, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, 401, dto.ErrorCodeInvalidToken, "Invalid token")

	default:
		// Internal details never reach the response body
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// respondValidation keeps the caller-facing message of a validation error,
// which names the offending field or rule.
func respondValidation(c *gin.Context, err error) {
	message := "Validation failed"
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}
	c.JSON(422, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))
}
