package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error suitable for API payloads.
type Base struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, field string) *Base {
	return &Base{Code: code, Message: message, Field: field}
}

type ValidationErrors map[string]*Base

// ProcessValidatorErrors converts go-playground validation errors into
// coded errors keyed by struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "max":
			message = fmt.Sprintf("%s is too long", err.Field())
		default:
			message = fmt.Sprintf("%s is invalid", err.Field())
		}
		out[err.Field()] = NewError("VALIDATION_"+err.Tag(), message, err.Field())
	}
	return out
}

// Messages flattens validation errors to field -> human message.
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}
