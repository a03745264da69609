package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRegexp     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// username: URL-safe identifier, "me" is reserved for the self-profile
	// endpoint and can never name a real account.
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "me" {
			return false
		}
		return usernameRegexp.MatchString(value)
	})

	// year: anywhere between year 1 and the current calendar year.
	v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1 && year <= int64(time.Now().Year())
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegexp.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "username":
		return "Invalid username"
	case "year":
		return fmt.Sprintf("Year must be between 1 and %d", time.Now().Year())
	case "slug":
		return "Must contain only letters, numbers, hyphens and underscores"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
