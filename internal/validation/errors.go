package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType represents the type of validation error
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
	ErrorTypeInvalidType   ValidationErrorType = "invalid_type"
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

// Error implements the error interface for FieldError
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects every problem found in one input. Field-level
// problems go to Errors; problems with the input as a whole (for example a
// body that is not JSON) go to FormErrors.
type ValidationError struct {
	Errors     []FieldError
	FormErrors []string
}

// NewValidationError creates a new ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors:     make([]FieldError, 0),
		FormErrors: make([]string, 0),
	}
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	var messages []string
	messages = append(messages, ve.FormErrors...)
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}

	switch len(messages) {
	case 0:
		return "validation error"
	case 1:
		return messages[0]
	default:
		return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
	}
}

// AsValidationError finds a ValidationError in err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HasErrors returns true if the ValidationError has any errors
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0 || len(ve.FormErrors) > 0
}

// AddError adds a new field error to the validation error
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddFormError records a problem that does not belong to a single field.
func (ve *ValidationError) AddFormError(message string) {
	ve.FormErrors = append(ve.FormErrors, message)
}

// AddRequiredError adds a required field error
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field), nil)
}

// AddInvalidFormatError adds an invalid format error
func (ve *ValidationError) AddInvalidFormatError(field string, value interface{}, expectedFormat string) {
	message := fmt.Sprintf("%s has invalid format, expected: %s", field, expectedFormat)
	ve.AddError(field, ErrorTypeInvalidFormat, message, value)
}

// AddInvalidLengthError adds an invalid length error
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	var message string
	switch {
	case min > 0 && max > 0:
		message = fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	case min > 0:
		message = fmt.Sprintf("%s must be at least %d characters long", field, min)
	case max > 0:
		message = fmt.Sprintf("%s must be at most %d characters long", field, max)
	default:
		message = fmt.Sprintf("%s has invalid length", field)
	}
	ve.AddError(field, ErrorTypeInvalidLength, message, value)
}

// AddInvalidValueError adds an invalid value error
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	message := fmt.Sprintf("%s has invalid value: %s", field, reason)
	ve.AddError(field, ErrorTypeInvalidValue, message, value)
}

// AddInvalidRangeError adds an invalid range error
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	message := fmt.Sprintf("%s is out of range: %s", field, reason)
	ve.AddError(field, ErrorTypeInvalidRange, message, value)
}

// AddInvalidTypeError reports a JSON value of the wrong kind.
func (ve *ValidationError) AddInvalidTypeError(field string, expected string) {
	message := fmt.Sprintf("%s must be %s", field, expected)
	ve.AddError(field, ErrorTypeInvalidType, message, nil)
}

// Fields renders the field errors as field -> messages, in insertion order per field.
func (ve *ValidationError) Fields() map[string][]string {
	fields := make(map[string][]string, len(ve.Errors))
	for _, err := range ve.Errors {
		fields[err.Field] = append(fields[err.Field], err.Message)
	}
	return fields
}
