package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Clearance workflow errors
var (
	ErrSignatoryNotFound = errors.New("organization admin not found")
	ErrSignatoryInactive = errors.New("organization admin account has been deactivated")
	ErrClearanceLocked   = errors.New("clearance is locked and cannot be modified")
	ErrItemNotFound      = errors.New("clearance item not found or not assigned to caller")
	ErrAlreadyApproved   = errors.New("clearance item has already been approved")
	ErrClearanceNotFound = errors.New("clearance not found")
)

// Student errors
var (
	ErrStudentNotFound            = errors.New("student not found")
	ErrStudentNumberAlreadyExists = errors.New("student number already exists")
)

// Organization errors
var (
	ErrOrganizationNotFound     = errors.New("organization not found")
	ErrOrgCodeAlreadyExists     = errors.New("organization with this code already exists")
	ErrOrganizationHasRelations = errors.New("organization has associated data and cannot be deleted")
	ErrOrganizationHasAdmin     = errors.New("organization already has an admin assigned")
)

// Academic term errors
var (
	ErrTermNotFound      = errors.New("academic term not found")
	ErrTermHasClearances = errors.New("academic term has existing clearances and cannot be deleted")
	ErrTermIsCurrent     = errors.New("the current active term cannot be deleted")
)

// System admin errors
var (
	ErrSysAdminNotFound = errors.New("system admin not found")
	ErrSelfDeletion     = errors.New("cannot delete own account")
)

// Token format errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
