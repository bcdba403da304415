package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "course-miniapp/internal/common/errors"
)

const (
	// Ограничения, совпадающие с серверными схемами
	MinRating         = 1
	MaxRating         = 5
	MaxCommentLength  = 2000
	MaxFullNameLength = 255
	MaxPhoneLength    = 32
	MaxCityLength     = 128
	MaxMessageLength  = 4000
	MaxSubjectLength  = 255
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// "notblank" rejects strings that are empty after trimming
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates a request body and converts the first failure into a
// VALIDATION_ERROR AppError. Nil means the body can be sent.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		appErr := apperrors.NewValidationError(fieldName(fe), reason(fe))
		if len(fieldErrs) > 1 {
			appErr.WithDetail("errors", len(fieldErrs))
		}
		return appErr
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, "Validation failed")
}

// ValidatePositiveID проверяет, что идентификатор положительный
func ValidatePositiveID(value int64, fieldName string) error {
	if value <= 0 {
		return apperrors.NewValidationError(fieldName, "must be positive")
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return fe.StructField()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must contain only digits"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// NewOneOfError reports a value outside the allowed set.
func NewOneOfError(fieldName string, allowed ...string) error {
	return apperrors.NewValidationError(fieldName, "must be one of "+strings.Join(allowed, ", "))
}
