package middleware

import (
	"github.com/go-playground/validator/v10"

	"github.com/nonso/acadport/internal/pkg/apperrors"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on a bound request and converts
// the first failure into a field-tagged validation error. Gin's binding
// covers required-ness; this covers ranges and lengths.
func ValidateStruct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		return apperrors.NewValidation(e.Field(), formatValidationError(e))
	}
	return apperrors.New(apperrors.ErrValidationFailed, err.Error())
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "lt":
		return e.Field() + " must be less than " + e.Param()
	case "lte":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
