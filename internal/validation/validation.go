package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/surveyhub/internal/apperror"
)

// NonFieldErrors is the key used for errors that are not tied to a field.
const NonFieldErrors = "non_field_errors"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Struct validates v with the same engine gin uses for `binding` tags.
func Struct(v any) error {
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return FromBindError(err)
	}
	return nil
}

// FromBindError converts an error from ShouldBindJSON or Struct into an
// apperror validation error carrying per-field messages.
func FromBindError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := apperror.FieldErrors{}
		for _, fe := range verrs {
			fields.Add(fieldPath(fe.Namespace()), message(fe))
		}
		return apperror.Validation(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = NonFieldErrors
		}
		return apperror.ValidationField(field, fmt.Sprintf("Incorrect type. Expected %s, received %s.", typeErr.Type.Kind(), typeErr.Value))
	}

	if errors.Is(err, io.EOF) {
		return apperror.ValidationField(NonFieldErrors, "Request body is empty.")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperror.ValidationField(NonFieldErrors, "JSON parse error - "+syntaxErr.Error())
	}

	return apperror.ValidationField(NonFieldErrors, err.Error())
}

// fieldPath drops the root struct name from a validator namespace,
// "SurveyCreateRequest.questions[0].text" -> "questions[0].text".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this field has no more than %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this field has at least %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "eqfield":
		return fmt.Sprintf("This field must match %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
