package dto

import "time"

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	// Validation
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidEmail     ErrorCode = "VAL_002"
	ErrorCodeInvalidPhone     ErrorCode = "VAL_003"

	// Conflicts
	ErrorCodeAlreadyExists     ErrorCode = "CON_001"
	ErrorCodeAlreadyRegistered ErrorCode = "CON_002"
	ErrorCodePinUsed           ErrorCode = "CON_003"

	// Not found / not applicable
	ErrorCodeNotFound          ErrorCode = "RES_001"
	ErrorCodePinNotApplicable  ErrorCode = "RES_002"

	// Auth
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_002"
	ErrorCodeForbidden          ErrorCode = "AUTH_003"

	// Server / collaborator
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
	ErrorCodeFileNotAvailable ErrorCode = "SRV_002"
	ErrorCodeImportFailed     ErrorCode = "SRV_003"
)

// ErrorDetail carries everything a caller needs to branch on an error and
// identify the offending field.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates an error detail.
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField names the field the error refers to.
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches extra context.
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps a detail in the standard envelope.
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: detail, Timestamp: time.Now()}
}
