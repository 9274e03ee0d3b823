package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeUsernameTaken      = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeTooManyAttempts    = "USR004"
	ErrCodeInvalidInput       = "USR005"
)

// Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewUsernameTakenError(username string) *UserError {
	return &UserError{
		Code:    ErrCodeUsernameTaken,
		Message: fmt.Sprintf("Username %q is already taken", username),
		Err:     ErrUsernameTaken,
	}
}

func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Username and password did not match",
		Err:     ErrInvalidCredentials,
	}
}

func NewTooManyAttemptsError() *UserError {
	return &UserError{
		Code:    ErrCodeTooManyAttempts,
		Message: "Too many failed login attempts, try again later",
		Err:     ErrTooManyAttempts,
	}
}

func NewInvalidInputError(err error) *UserError {
	return &UserError{
		Code:    ErrCodeInvalidInput,
		Message: err.Error(),
		Err:     err,
	}
}
