package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/saofrance/shop-api/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validate      *Validator
)

// GetValidator returns the shared validator, registering the domain tags
// (role, currency, category) on first use
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New()
		// report fields under their JSON names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return domain.CurrencyKind(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return domain.Category(fl.Field().String()).IsValid()
		})
		validate = &Validator{validate: v}
	})
	return validate
}

func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// fixed messages per tag; tags with a parameter are formatted in fieldMessage
var tagMessages = map[string]string{
	"required":    "This field is required",
	"email":       "Invalid email format",
	"role":        "Unknown role",
	"currency":    "Must be points or real_money",
	"category":    "Must be rank, points or cosmetic",
	"excludesall": "Contains invalid characters",
}

func fieldMessage(e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("Must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", e.Param())
	case "ne":
		return fmt.Sprintf("Must not be %s", e.Param())
	}
	return "Invalid value"
}

// FormatValidationError maps each rejected field, by JSON name, to a message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, e := range fieldErrs {
		out[e.Field()] = fieldMessage(e)
	}
	return out
}
