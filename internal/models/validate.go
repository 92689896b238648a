package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct runs the struct tags of s and reports the first failure as
// a ValidationError with a readable message.
func ValidateStruct(s any) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return NewValidationError(field, "%s is required", field)
	case "email":
		return NewValidationError(field, "%s must be a valid email address", field)
	case "min":
		return NewValidationError(field, "%s must be at least %s", field, fe.Param())
	case "max":
		return NewValidationError(field, "%s must be at most %s", field, fe.Param())
	case "oneof":
		return NewValidationError(field, "%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return NewValidationError(field, "%s is invalid", field)
	}
}
