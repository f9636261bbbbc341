package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"testimonials/internal/models"
)

// MinMessageLength is the minimum number of trimmed characters in a message.
const MinMessageLength = 10

// Result is the outcome of validating a submission. FieldErrors is keyed by the
// JSON/form field name.
type Result struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"fields,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateSubmission checks a visitor submission after trimming it.
// Name is required, message is required with at least MinMessageLength
// characters, rating must be 1..5 and email, when given, must be an address.
func ValidateSubmission(s models.Submission) Result {
	s = s.Normalize()

	err := validate.Struct(s)
	if err == nil {
		return Result{Valid: true}
	}

	fieldErrors := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["form"] = "Invalid submission."
		return Result{Valid: false, FieldErrors: fieldErrors}
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := fieldErrors[field]; seen {
			continue
		}
		fieldErrors[field] = messageFor(field, fe.Tag())
	}

	return Result{Valid: false, FieldErrors: fieldErrors}
}

func messageFor(field, tag string) string {
	switch field {
	case "name":
		switch tag {
		case "required":
			return "Name is required."
		case "singleline":
			return "Name must fit on a single line."
		}
		return "Name is too long."
	case "message":
		switch tag {
		case "required":
			return "Message cannot be empty."
		case "min":
			return "Message must be at least 10 characters."
		}
		return "Message is too long."
	case "rating":
		return "Rating must be between 1 and 5."
	case "email":
		if tag == "email" {
			return "Email address is invalid."
		}
		return "Email address is too long."
	case "brand_name":
		return "Brand name is too long."
	}
	return "Invalid value."
}
