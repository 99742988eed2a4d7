package helpers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devconnect-app/server/internal/apperr"
)

// RegisterJSONTagNames makes the validator report field names from json tags
// so the error list matches the wire format.
func RegisterJSONTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

var fieldLabels = map[string]string{
	"fieldofstudy": "Field of study",
	"from":         "From date",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// ValidationError converts validator failures into the per-field error list
// the API reports with a 400.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.NewValidation(apperr.FieldError{Field: "body", Message: "Invalid request body"})
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = label(fe.Field()) + " is required"
		case "email":
			msg = "Please include a valid email"
		case "min":
			if fe.Field() == "password" {
				msg = "Please enter a password with 6 or more characters"
			} else {
				msg = label(fe.Field()) + " is too short"
			}
		default:
			msg = label(fe.Field()) + " is invalid"
		}
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: msg})
	}
	return apperr.NewValidation(fields...)
}
