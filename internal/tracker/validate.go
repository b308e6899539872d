package tracker

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"teamboard/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		_, ok := models.ValidTaskStatuses[models.TaskStatus(fl.Field().String())]
		return ok
	})
	return v
}

// checkRequest validates a request struct and converts the first failure to
// a ValidationError.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return validationf(field, "is required")
	case "max":
		return validationf(field, "exceeds maximum length of %s", fe.Param())
	case "task_status":
		return validationf(field, "must be one of %s, %s or %s, got %q",
			models.TaskOpen, models.TaskInProgress, models.TaskComplete, fe.Value())
	default:
		return validationf(field, "failed %s check", fe.Tag())
	}
}
