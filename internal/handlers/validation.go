package handlers

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"userapi/internal/apperrors"
)

const passwordSymbols = "!@#$%^&*"

// newValidator builds the request validator with the custom password rule
// registered.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("passwd", validPassword)
	return v
}

// validPassword requires at least one digit, one lowercase letter, one
// uppercase letter and one symbol from the fixed set.
func validPassword(fl validator.FieldLevel) bool {
	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasDigit && hasLower && hasUpper && hasSymbol
}

// validationError converts validator output into a ValidationError listing
// every violated rule with a client-facing message.
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.BadRequest("Invalid request body")
	}

	fieldErrs := make([]apperrors.FieldError, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   field,
			Message: ruleMessage(field, e),
		})
	}
	return &apperrors.ValidationError{Errors: fieldErrs}
}

func ruleMessage(field string, e validator.FieldError) string {
	switch field {
	case "name":
		if e.Tag() == "required" {
			return "Name is required"
		}
		return "Name must be between 3 and 20 characters"
	case "email":
		if e.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email address"
	case "password":
		switch e.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 6 characters long"
		default:
			return fmt.Sprintf("Password must contain at least one number, one uppercase letter, one lowercase letter, and one special character (%s)", passwordSymbols)
		}
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' rule", field, e.Tag())
}
