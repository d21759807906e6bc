// Package validation wraps go-playground/validator so every service reports
// input problems as a single human-readable Error.
package validation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Error is a client input problem. Message is safe to show to callers.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an Error for field with the given message.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Messages maps "Field.tag" or "Field" to the message reported when that
// rule fails. The more specific key wins.
type Messages map[string]string

func (m Messages) lookup(fe validator.FieldError) string {
	if msg, ok := m[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[fe.StructField()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Validator is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// maxbytes bounds the encoded length, unlike max which counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return &Validator{validate: v}
}

// Struct validates s and returns the first failing field as *Error.
// Fields are checked in declaration order.
func (v *Validator) Struct(s any, messages Messages) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	first := fieldErrs[0]
	return &Error{Field: first.Field(), Message: messages.lookup(first)}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
