// Package vm provides error handling for the tape machine.
package vm

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of runtime error.
type ErrorType string

// All runtime errors are fatal: the machine halts and cannot be resumed.
const (
	ErrorUnderflow         ErrorType = "UNDERFLOW"
	ErrorMismatchedBracket ErrorType = "MISMATCHED_BRACKET"
	ErrorIO                ErrorType = "IO_ERROR"
	ErrorStepLimit         ErrorType = "STEP_LIMIT"
)

// Sentinels for errors.Is. A *RuntimeError matches the sentinel of its Type.
var (
	ErrUnderflow         = errors.New("data pointer went below zero")
	ErrMismatchedBracket = errors.New("mismatched bracket")
	ErrIO                = errors.New("IO error")
	ErrStepLimit         = errors.New("step limit exceeded")
)

// RuntimeError represents a fatal error raised while running a program.
type RuntimeError struct {
	Type    ErrorType
	Message string
	PC      int   // index of the instruction that failed
	Err     error // underlying stream error for ErrorIO
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying stream error, if any.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for e.Type.
func (e *RuntimeError) Is(target error) bool {
	switch e.Type {
	case ErrorUnderflow:
		return target == ErrUnderflow
	case ErrorMismatchedBracket:
		return target == ErrMismatchedBracket
	case ErrorIO:
		return target == ErrIO
	case ErrorStepLimit:
		return target == ErrStepLimit
	}
	return false
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(errType ErrorType, message string, pc int) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: message,
		PC:      pc,
	}
}

// NewUnderflowError creates the error for moving left of the first cell.
func NewUnderflowError(pc int) *RuntimeError {
	return NewRuntimeError(ErrorUnderflow, ErrUnderflow.Error(), pc)
}

// NewMismatchedBracketError creates the error for a bracket without a partner.
func NewMismatchedBracketError(pc int) *RuntimeError {
	return NewRuntimeError(ErrorMismatchedBracket, ErrMismatchedBracket.Error(), pc)
}

// NewIOError wraps a failure of the input or output stream.
func NewIOError(pc int, cause error) *RuntimeError {
	e := NewRuntimeError(ErrorIO, ErrIO.Error(), pc)
	e.Err = cause
	return e
}

// NewStepLimitError creates the error for exceeding the configured step budget.
func NewStepLimitError(pc int, limit int64) *RuntimeError {
	return NewRuntimeError(ErrorStepLimit, fmt.Sprintf("%s: %d instructions", ErrStepLimit.Error(), limit), pc)
}
