package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/veerakumarak/jsend/pkg/errors"
	"github.com/veerakumarak/jsend/pkg/jsend"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		if tag == "-" {
			return ""
		}
		return tag
	})
	return v
}

// Struct validates v against its `validate` tags. Field failures come back as
// a CodeValidation error whose details map json field names to reasons.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return "is invalid"
}

// Reasons extracts the field reasons carried by a validation error.
func Reasons(err error) (map[string]string, bool) {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return nil, false
	}
	reasons, ok := typed.Details().(map[string]string)
	if !ok || len(reasons) == 0 {
		return nil, false
	}
	return reasons, true
}

// FailResponse maps err onto a JSend fail. Validation errors become field
// reasons; anything else becomes the fail message.
func FailResponse[T any](err error) (jsend.Response[T], error) {
	if err == nil {
		return jsend.Response[T]{}, pkgerrors.InvalidArgument("err")
	}
	if reasons, ok := Reasons(err); ok {
		return jsend.FailReasons[T](reasons)
	}
	msg := err.Error()
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		msg = typed.Message()
	}
	return jsend.Fail[T](msg)
}
