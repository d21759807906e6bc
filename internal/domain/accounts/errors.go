package accounts

import (
	"errors"

	"github.com/aqtareen/Taqreeb/internal/validation"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrNoTeamsAvailable is returned when an employee registers and no team
	// exists to assign them to. It is an operational problem, not user error.
	ErrNoTeamsAvailable = errors.New("no teams available for employee assignment")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned by Repository.FindByEmail. The service never
	// surfaces it to callers.
	ErrNotFound = errors.New("user not found")
)

// ValidationError reports malformed registration or login input.
type ValidationError = validation.Error

// RegistrationFailedError wraps an unclassified failure during Register.
// The transaction has been rolled back when it is returned.
type RegistrationFailedError struct {
	Err error
}

func (e *RegistrationFailedError) Error() string {
	return "registration failed: " + e.Err.Error()
}

func (e *RegistrationFailedError) Unwrap() error {
	return e.Err
}
