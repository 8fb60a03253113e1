package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Messager is implemented by schemas that word their own violations.
// Keys are "<json field>.<rule>", e.g. "email.required".
type Messager interface {
	Messages() map[string]string
}

// Normalizer is implemented by schemas that clean input before validation,
// e.g. trimming and lower-casing an email.
type Normalizer interface {
	Normalize()
}

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})

		if err := validate.RegisterValidation("decimals", maxDecimalPlaces); err != nil {
			panic(err)
		}
		if err := validate.RegisterValidation("maxbytes", maxBytes); err != nil {
			panic(err)
		}
	})
	return validate
}

// Check validates s and returns one message per violation in field order.
// Fields listed in skip are left out.
func Check(s any, messages map[string]string, skip map[string]bool) []string {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid request"}
	}

	out := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if skip[e.Field()] {
			continue
		}
		out = append(out, messageFor(e, messages))
	}
	return out
}

func messageFor(e validator.FieldError, messages map[string]string) string {
	if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	return e.Field() + " " + formatValidationError(e)
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_without_all":
		return "is required when no other field is provided"
	case "email":
		return "must be a valid email address"
	case "min":
		if isNumeric(e.Kind()) {
			return "must be at least " + e.Param()
		}
		return "must be at least " + e.Param() + " characters"
	case "max":
		if isNumeric(e.Kind()) {
			return "must be at most " + e.Param()
		}
		return "must be at most " + e.Param() + " characters"
	case "gt":
		return "must be greater than " + e.Param()
	case "eqfield":
		return "must match " + toSnakeCase(e.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	case "decimals":
		return "can have at most " + e.Param() + " decimal places"
	case "maxbytes":
		return "must not exceed " + e.Param() + " bytes"
	default:
		return "is invalid"
	}
}

// maxDecimalPlaces reports whether a float has at most param digits after the point.
func maxDecimalPlaces(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
	default:
		return false
	}

	formatted := strconv.FormatFloat(field.Float(), 'f', -1, 64)
	_, fraction, found := strings.Cut(formatted, ".")
	return !found || len(fraction) <= places
}

// maxBytes reports whether a string is at most param bytes long. Unlike max,
// which counts runes, this matches limits such as bcrypt's 72-byte input.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return len(field.String()) <= limit
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
