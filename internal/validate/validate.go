// Package validate holds the data-acceptance contracts shared across the
// API: Indian mobile numbers, GST identification numbers, and security PINs.
// The patterns gate persistence elsewhere, so they must not drift.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	pinPattern   = regexp.MustCompile(`^[0-9]{4}$`)
)

// Phone reports whether the value is a valid Indian mobile number
// (ten digits starting 6-9).
func Phone(phone string) bool {
	if phone == "" {
		return false
	}
	return phonePattern.MatchString(phone)
}

// GSTIN reports whether the value is a valid 15-character GST identification
// number. An empty value is accepted: GSTIN is optional for unregistered
// shops.
func GSTIN(gstin string) bool {
	if gstin == "" {
		return true
	}
	return gstinPattern.MatchString(strings.ToUpper(gstin))
}

// PIN reports whether the value is a 4-digit security PIN.
func PIN(pin string) bool {
	if pin == "" {
		return false
	}
	return pinPattern.MatchString(pin)
}

// New returns a validator with the domain tags registered: "inphone",
// "gstin", and "pin4". Request DTOs use these alongside the builtin tags;
// field names in error messages come from the json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tag names.
	_ = v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return GSTIN(fl.Field().String())
	})
	_ = v.RegisterValidation("pin4", func(fl validator.FieldLevel) bool {
		return PIN(fl.Field().String())
	})
	return v
}

var requests = New()

// Struct runs the tagged rules of a request DTO against the shared
// validator and rewrites the first failure into a client-facing message.
func Struct(dto any) error {
	err := requests.Struct(dto)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return errors.New(message(fields[0]))
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "inphone":
		return fe.Field() + " must be a valid 10-digit Indian mobile number"
	case "gstin":
		return fe.Field() + " must be a valid 15-character GSTIN"
	case "pin4":
		return fe.Field() + " must be a 4-digit PIN"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	}
	return fe.Field() + " is invalid"
}
