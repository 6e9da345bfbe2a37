package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requiredFields lists the submission's JSON keys in form order
var requiredFields = []string{"name", "surname", "number", "email", "company"}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var result []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			result = append(result, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return result
}

// MissingFields returns the names of the fields a bind error reports as
// absent. An empty body is missing all of them.
func MissingFields(err error) []string {
	if errors.Is(err, io.EOF) {
		return append([]string(nil), requiredFields...)
	}

	var fields []string
	for _, ve := range ParseValidationErrors(err) {
		fields = append(fields, strings.ToLower(ve.Field))
	}
	return fields
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	default:
		return fe.Field() + " is invalid"
	}
}
