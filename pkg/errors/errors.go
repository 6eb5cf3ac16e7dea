// Package errors provides custom error types for the csvsync system.
// These errors enable programmatic error checking at the load, match and
// write boundaries of a reconciliation run.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the csvsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformed indicates that a source file could not be parsed
	ErrMalformed = errors.New("malformed source")

	// ErrDuplicateKey indicates that a file holds the same key more than once
	ErrDuplicateKey = errors.New("duplicate key")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// KeyColumnError reports a key column that is absent from one or more of the
// files a run needs to match on.
type KeyColumnError struct {
	Column string
	Files  []string
}

// Error implements the error interface
func (e *KeyColumnError) Error() string {
	if e.Column == "" {
		return "key column is required"
	}
	if len(e.Files) == 0 {
		return fmt.Sprintf("key column %q not found", e.Column)
	}
	return fmt.Sprintf("key column %q not found in %s", e.Column, strings.Join(e.Files, ", "))
}

// Is implements errors.Is support
func (e *KeyColumnError) Is(target error) bool {
	return target == ErrInvalidInput || target == ErrNotFound
}

// NewKeyColumnError creates a new KeyColumnError
func NewKeyColumnError(column string, files ...string) *KeyColumnError {
	return &KeyColumnError{Column: column, Files: files}
}

// DuplicateError reports keys that occur more than once in a single file.
type DuplicateError struct {
	File string
	Keys []string
}

// Error implements the error interface
func (e *DuplicateError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("duplicate keys in %s: %v", e.File, e.Keys)
	}
	return fmt.Sprintf("duplicate keys: %v", e.Keys)
}

// Is implements errors.Is support
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NewDuplicateError creates a new DuplicateError
func NewDuplicateError(file string, keys []string) *DuplicateError {
	return &DuplicateError{File: file, Keys: keys}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when reading a delimited text source
type ParseError struct {
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error at %s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// NewParseError creates a new ParseError
func NewParseError(file string, line int, message string, err error) *ParseError {
	return &ParseError{
		File:    file,
		Line:    line,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformed checks if an error came from parsing a source file
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// IsDuplicateKey checks if an error reports duplicate keys
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(file string, line int, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(file, line, err.Error(), err)
}
