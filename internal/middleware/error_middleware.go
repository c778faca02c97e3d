package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/logger"
)

// HandleAPIError translates workflow errors into the standard error
// envelope. Controllers funnel every service error through here so the
// sentinel-to-status mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)

	// Field context survives the translation when the service attached it.
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Field != "" {
			detail.WithField(appErr.Field)
		}
		if appErr.Message != "" {
			detail.Message = appErr.Message
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	switch {
	// Validation
	case errors.Is(err, apperrors.ErrInvalidEmail):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidEmail, err.Error())
	case errors.Is(err, apperrors.ErrInvalidPhone):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidPhone, err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	// Conflicts
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeAlreadyRegistered, err.Error())
	case errors.Is(err, apperrors.ErrPinAlreadyUsed):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodePinUsed, err.Error())
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailExists),
		errors.Is(err, apperrors.ErrPhoneExists),
		errors.Is(err, apperrors.ErrRegNumberExists),
		errors.Is(err, apperrors.ErrMatricNumberExists),
		errors.Is(err, apperrors.ErrPaymentRefExists),
		errors.Is(err, apperrors.ErrCourseCodeExists),
		errors.Is(err, apperrors.ErrDuplicateResultEntry):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeAlreadyExists, err.Error())

	// Pin not applicable to this course: the pin exists, so 422 rather
	// than 404.
	case errors.Is(err, apperrors.ErrPinCourseMismatch):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodePinNotApplicable, err.Error())

	// Not found
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrPinNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeNotFound, err.Error())

	// Auth
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, err.Error())
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())

	// Collaborator failures
	case errors.Is(err, apperrors.ErrFileNotAvailable):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeFileNotAvailable, err.Error())
	case errors.Is(err, apperrors.ErrImportFailed):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeImportFailed, err.Error())
	case errors.Is(err, apperrors.ErrExportFailed):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
