package validator

import (
	"errors"
	"reflect"
	"strings"
	"time"
	"unicode"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("staff_id", func(fl playground.FieldLevel) bool {
		return isPrintable(fl.Field().String())
	}))
	must(v.RegisterValidation("date", layoutValidator(DateLayout)))
	must(v.RegisterValidation("month", layoutValidator(MonthLayout)))

	return v
}

func layoutValidator(layout string) playground.Func {
	return func(fl playground.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}

// Struct checks s against its `validate` tags and returns ValidationErrors
// keyed by JSON field name, or nil.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return errs
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "staff_id":
		return fe.Field() + " must not contain control characters"
	case "date":
		return fe.Field() + " must be in YYYY-MM-DD format"
	case "month":
		return fe.Field() + " must be in YYYY-MM format"
	default:
		return fe.Field() + " is invalid"
	}
}

// isPrintable allows any Unicode letters, digits, marks, symbols and plain spaces.
func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
