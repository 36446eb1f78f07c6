package interviewer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateEmail reports whether s looks like an email address the backend accepts.
func ValidateEmail(s string) error {
	if err := validate.Var(strings.TrimSpace(s), "required,email"); err != nil {
		return errors.New("a valid email address is required")
	}
	return nil
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}

	return &ValidationError{Problems: problems}
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	// Drop the struct name: "SubmitAnswersRequest.answers[0].answer" -> "answers[0].answer".
	if idx := strings.Index(field, "."); idx != -1 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
