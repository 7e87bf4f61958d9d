package apperrors

import (
	"errors"
	"fmt"
)

// Wrap creates a classified error.
func Wrap(class ErrorClass, operation string, err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	return &ClassifiedError{
		Class:     class,
		Operation: operation,
		Err:       err,
		Context:   make(map[string]any),
	}
}

// WrapWithMessageFor wraps err and records the entity it failed on.
func WrapWithMessageFor(
	class ErrorClass,
	operation string,
	message string,
	messageFor string,
	err error,
) *ClassifiedError {
	if err == nil {
		classified := New(class, operation, message)
		classified.MessageFor = messageFor
		return classified
	}

	classified := Wrap(class, operation, err)
	classified.Message = message
	classified.MessageFor = messageFor

	return classified
}

// WithContext adds context to a classified error.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	if e == nil {
		return nil
	}
	if e.Context == nil {
		e.Context = make(map[string]any)
	}

	e.Context[key] = value

	return e
}

// New creates a new classified error with a message.
func New(class ErrorClass, operation string, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Operation: operation,
		Err:       errors.New(message),
		Context:   make(map[string]any),
	}
}

// Newf is New with a format string. %w verbs keep the wrapped error reachable
// through errors.Is.
func Newf(class ErrorClass, operation string, format string, args ...any) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Operation: operation,
		Err:       fmt.Errorf(format, args...),
		Context:   make(map[string]any),
	}
}

// GetClass extracts the error class from an error.
func GetClass(err error) ErrorClass {
	if err == nil {
		return ErrClassUnknown
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class
	}

	return ErrClassUnknown
}

// GetOperation extracts the operation from an error.
func GetOperation(err error) string {
	if err == nil {
		return ""
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Operation
	}

	return ""
}

// GetContext extracts context from an error.
func GetContext(err error) map[string]any {
	if err == nil {
		return nil
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Context
	}

	return nil
}
