package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator errors into messages keyed by
// the JSON field name. Non-validator errors are reported under
// "non_field_errors".
func FormatValidationErrors(err error) map[string][]string {
	out := map[string][]string{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		out["non_field_errors"] = []string{err.Error()}
		return out
	}

	for _, e := range validationErrors {
		out[e.Field()] = append(out[e.Field()], formatSingleError(e))
	}
	return out
}

func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return "This field is required."

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Ensure this field has at least %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)

	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)

	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)

	case "oneof":
		return fmt.Sprintf("%q is not a valid choice. Choose one of: %s.", fmt.Sprint(e.Value()), strings.Join(strings.Fields(param), ", "))

	case "email":
		return "Enter a valid email address."

	case "url":
		return "Enter a valid URL."

	case "valid_name":
		return "Only letters, spaces and . ' - are allowed."

	case "valid_phone":
		return "Enter a valid phone number (7-15 digits, optional +)."

	case "valid_username":
		return "Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters."

	case "no_emoji":
		return "Emoji and special symbols are not allowed."

	case "eqfield":
		return fmt.Sprintf("Must match %s.", param)

	default:
		return fmt.Sprintf("Invalid value (%s).", e.Tag())
	}
}
