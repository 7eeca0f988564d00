package validation

import (
	"fitness-journal/internal/domain"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// UserValidator validates registration and login bodies.
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator() *UserValidator {
	return &UserValidator{validator: NewValidator()}
}

// ParseRegister validates a registration body.
func (uv *UserValidator) ParseRegister(body []byte) (domain.RegisterInput, error) {
	ve := NewValidationError()
	obj, ok := decodeObject(body, ve)
	if !ok {
		return domain.RegisterInput{}, ve
	}

	var input domain.RegisterInput

	if email, ok := uv.requiredString(obj, "email", ve); ok {
		if uv.validator.IsValidEmail(email) {
			input.Email = domain.NormalizeEmail(email)
		} else {
			ve.AddInvalidFormatError("email", email, "email address")
		}
	}

	if password, ok := uv.requiredString(obj, "password", ve); ok {
		if len(password) >= MinPasswordLength {
			input.Password = password
		} else {
			ve.AddInvalidLengthError("password", nil, MinPasswordLength, 0)
		}
	}

	if name, ok := uv.requiredString(obj, "name", ve); ok {
		if uv.validator.IsNonEmptyString(name) {
			input.Name = name
		} else {
			ve.AddInvalidValueError("name", name, "must not be empty")
		}
	}

	if ve.HasErrors() {
		return domain.RegisterInput{}, ve
	}
	return input, nil
}

// ParseLogin validates a login body. Only presence is checked; credential
// mismatches are reported by the auth service.
func (uv *UserValidator) ParseLogin(body []byte) (domain.LoginInput, error) {
	ve := NewValidationError()
	obj, ok := decodeObject(body, ve)
	if !ok {
		return domain.LoginInput{}, ve
	}

	var input domain.LoginInput
	if email, ok := uv.requiredString(obj, "email", ve); ok {
		input.Email = domain.NormalizeEmail(email)
	}
	if password, ok := uv.requiredString(obj, "password", ve); ok {
		input.Password = password
	}

	if ve.HasErrors() {
		return domain.LoginInput{}, ve
	}
	return input, nil
}

func (uv *UserValidator) requiredString(obj object, field string, ve *ValidationError) (string, bool) {
	if !obj.has(field) || obj.isNull(field) {
		ve.AddRequiredError(field)
		return "", false
	}
	s, ok := obj.str(field, ve)
	if ok && s == "" {
		ve.AddRequiredError(field)
		return "", false
	}
	return s, ok
}
