package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodePostNotFound = "PST001"
	ErrCodeNotOwner     = "PST002"
	ErrCodeInvalidInput = "PST003"
)

// Errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("not the author of this post")
)

// PostError custom error type
type PostError struct {
	Code    string
	Message string
	Err     error
}

func (e *PostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewPostNotFoundError() *PostError {
	return &PostError{
		Code:    ErrCodePostNotFound,
		Message: "Post not found",
		Err:     ErrPostNotFound,
	}
}

func NewNotOwnerError(action string) *PostError {
	return &PostError{
		Code:    ErrCodeNotOwner,
		Message: fmt.Sprintf("You are not authorized to %s this post", action),
		Err:     ErrNotOwner,
	}
}

func NewInvalidInputError(err error) *PostError {
	return &PostError{
		Code:    ErrCodeInvalidInput,
		Message: err.Error(),
		Err:     err,
	}
}
