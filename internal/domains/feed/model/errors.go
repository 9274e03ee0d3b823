package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidCursor = "FED001"
	ErrCodeInvalidLimit  = "FED002"
	ErrCodeUserNotFound  = "FED003"
)

// Errors
var (
	ErrInvalidLimit = errors.New("limit must not be negative")
)

// FeedError custom error type
type FeedError struct {
	Code    string
	Message string
	Err     error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewInvalidCursorError(err error) *FeedError {
	return &FeedError{
		Code:    ErrCodeInvalidCursor,
		Message: "Invalid cursor",
		Err:     err,
	}
}

func NewInvalidLimitError() *FeedError {
	return &FeedError{
		Code:    ErrCodeInvalidLimit,
		Message: "Limit must not be negative",
		Err:     ErrInvalidLimit,
	}
}

func NewUserNotFoundError(err error) *FeedError {
	return &FeedError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     err,
	}
}
