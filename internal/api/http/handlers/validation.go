package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// NewValidator returns a validator that knows the complaint enums and reports JSON field names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(validate, "notblank", validators.NotBlank)
	mustRegister(validate, "complaint_category", func(fl validator.FieldLevel) bool {
		return domain.ComplaintCategory(fl.Field().String()).Valid()
	})
	mustRegister(validate, "complaint_priority", func(fl validator.FieldLevel) bool {
		return domain.ComplaintPriority(fl.Field().String()).Valid()
	})
	mustRegister(validate, "complaint_status", func(fl validator.FieldLevel) bool {
		return domain.ComplaintStatus(fl.Field().String()).Valid()
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

var enumHints = map[string]string{
	"complaint_category": "must be one of Product, Service, Support",
	"complaint_priority": "must be one of Low, Medium, High",
	"complaint_status":   "must be one of Pending, In Progress, Resolved",
}

// validationError converts validator output into a VALIDATION_FAILED DomainError.
func validationError(message string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(message, nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch {
		case fe.Tag() == "required" || fe.Tag() == "notblank":
			details[fe.Field()] = "is required"
		case enumHints[fe.Tag()] != "":
			details[fe.Field()] = enumHints[fe.Tag()]
		default:
			details[fe.Field()] = "failed " + fe.Tag()
		}
	}
	return apperrors.NewValidationError(message, details)
}
