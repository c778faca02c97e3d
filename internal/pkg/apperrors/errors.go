package apperrors

import "errors"

// Sentinel errors, grouped by the taxonomy the HTTP layer branches on:
// validation, conflict, not-found, and collaborator failures.

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrBadRequest       = errors.New("bad request")
)

// Conflict errors
var (
	ErrConflict             = errors.New("conflict")
	ErrEmailExists          = errors.New("email already registered")
	ErrPhoneExists          = errors.New("phone number already registered")
	ErrRegNumberExists      = errors.New("registration number already in use")
	ErrMatricNumberExists   = errors.New("matriculation number already in use")
	ErrAlreadyRegistered    = errors.New("student already registered for this course")
	ErrPinAlreadyUsed       = errors.New("pin has already been used")
	ErrPaymentRefExists     = errors.New("payment reference already recorded")
	ErrCourseCodeExists     = errors.New("course code already exists")
	ErrDuplicateResultEntry = errors.New("result already recorded for this course")
)

// Not-found errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrPinNotFound        = errors.New("pin not found")
	ErrEnrollmentNotFound = errors.New("course registration not found")
	ErrResourceNotFound   = errors.New("resource not found")
)

// Pin redemption mismatches. Not errors in the ledger's view; the workflow
// decides whether they become user-facing failures.
var (
	ErrPinCourseMismatch = errors.New("pin is not valid for this course")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Collaborator failures, always translated at the call site.
var (
	ErrFileNotAvailable = errors.New("file not available")
	ErrImportFailed     = errors.New("spreadsheet import failed")
	ErrExportFailed     = errors.New("document export failed")
)

// Error wraps a sentinel with request-specific context such as the
// offending field.
type Error struct {
	Err     error
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps a sentinel error with a message.
func New(err error, message string) *Error {
	return &Error{Err: err, Message: message}
}

// NewValidation reports a validation failure on a named field.
func NewValidation(field, message string) *Error {
	return &Error{Err: ErrValidationFailed, Field: field, Message: message}
}

// WithField records which field the error refers to.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}
