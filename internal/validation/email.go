package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// IsEmail reports whether value is a syntactically valid email address.
func IsEmail(value string) bool {
	return validate.Var(value, "required,email") == nil
}
