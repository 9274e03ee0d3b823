package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeEdgeNotFound  = "EDG001"
	ErrCodeAlreadyExists = "EDG002"
	ErrCodePostNotFound  = "EDG003"
)

// Errors
var (
	ErrEdgeNotFound  = errors.New("edge not found")
	ErrAlreadyExists = errors.New("edge already exists")
)

// EdgeError custom error type
type EdgeError struct {
	Code    string
	Message string
	Err     error
}

func (e *EdgeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EdgeError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewEdgeNotFoundError(kind Kind) *EdgeError {
	return &EdgeError{
		Code:    ErrCodeEdgeNotFound,
		Message: fmt.Sprintf("%s not found", kind),
		Err:     ErrEdgeNotFound,
	}
}

func NewAlreadyExistsError(kind Kind) *EdgeError {
	return &EdgeError{
		Code:    ErrCodeAlreadyExists,
		Message: fmt.Sprintf("Post is already %sd", kind),
		Err:     ErrAlreadyExists,
	}
}

func NewPostNotFoundError() *EdgeError {
	return &EdgeError{
		Code:    ErrCodePostNotFound,
		Message: "Post not found",
	}
}
