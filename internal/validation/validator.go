// Package validation holds the client-side form schemas. A form that fails
// here never reaches the network.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pawshop/storefront/internal/core/domain"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

var (
	whatsAppPattern = regexp.MustCompile(`^08\d{8,11}$`)
	clockPattern    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
)

// Validator wraps go-playground/validator with the storefront's custom rules
// and turns failures into domain validation errors.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

type Option func(*Validator)

// WithClock overrides the clock used by date rules.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

func New(opts ...Option) *Validator {
	val := &Validator{v: validator.New(), now: time.Now}
	for _, opt := range opts {
		opt(val)
	}

	val.v.RegisterTagNameFunc(jsonName)
	mustRegister(val.v, "whatsapp", func(fl validator.FieldLevel) bool {
		return whatsAppPattern.MatchString(fl.Field().String())
	})
	mustRegister(val.v, "clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	mustRegister(val.v, "notpast", val.notPast)

	return val
}

// Validate checks a form struct. It returns nil or a *domain.Error of kind
// validation whose Fields are keyed by wire name.
func (val *Validator) Validate(form any) error {
	err := val.v.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate form: %w", err)
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldError(fe)
		}
	}
	return domain.NewValidationError(fields)
}

// notPast accepts a YYYY-MM-DD date that is today or later in the local
// calendar. Unparseable input is left to the datetime rule.
func (val *Validator) notPast(fl validator.FieldLevel) bool {
	now := val.now()
	day, err := time.ParseInLocation(DateLayout, fl.Field().String(), now.Location())
	if err != nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !day.Before(today)
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "whatsapp":
		return field + " must start with 08 and be 10-13 digits"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "datetime":
		return field + " must be a date (YYYY-MM-DD)"
	case "notpast":
		return field + " cannot be in the past"
	case "clock":
		return field + " must be a time (HH:MM)"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
