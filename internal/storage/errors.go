// Package storage holds the driver-neutral error types returned by the
// storage gateway and its repositories.
package storage

import (
	"errors"
	"fmt"
)

// TimeoutError reports that acquiring a connection or running a statement
// exceeded its configured bound.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: storage timeout: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// QueryFailedError wraps any other storage failure.
type QueryFailedError struct {
	Op  string
	Err error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Op, e.Err)
}

func (e *QueryFailedError) Unwrap() error { return e.Err }

// IsTimeout reports whether err carries a TimeoutError.
func IsTimeout(err error) bool {
	var timeout *TimeoutError
	return errors.As(err, &timeout)
}

// IsQueryFailed reports whether err carries a QueryFailedError.
func IsQueryFailed(err error) bool {
	var failed *QueryFailedError
	return errors.As(err, &failed)
}
