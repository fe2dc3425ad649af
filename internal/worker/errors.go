package worker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPassword is returned when the current password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidTwoFactorCode is returned for a wrong code or recovery key.
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor code")
	// ErrNoteNotFound is returned when no note has the given id.
	ErrNoteNotFound = errors.New("note not found")
	// ErrTwoFactorEnabled is returned when enrolling an account that already has two-factor.
	ErrTwoFactorEnabled = errors.New("two-factor authentication is already enabled")
	// ErrTwoFactorDisabled is returned when disabling an account without two-factor.
	ErrTwoFactorDisabled = errors.New("two-factor authentication is not enabled")
	// ErrNoPendingKey is returned when enabling before a key was generated.
	ErrNoPendingKey = errors.New("no two-factor key has been generated")
	// ErrEmptyPassword is returned when the new password is blank.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// OpError records the operation that failed
type OpError struct {
	Op  string // "change_password", "edit_note_title", ...
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
