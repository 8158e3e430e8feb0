// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidAnswer     = errors.New("invalid wizard answer")
	ErrInvalidRecord     = errors.New("invalid trade record")
	ErrEmptyJournal      = errors.New("journal contains no trade records")
	ErrUnsupportedFormat = errors.New("unsupported journal format")
	ErrFileNotFound      = errors.New("file not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
)

// FieldKind tells which input family a validation failure belongs to.
type FieldKind int

const (
	KindRecord FieldKind = iota
	KindAnswer
)

// ValidationError represents a validation error on a single input field.
type ValidationError struct {
	Kind    FieldKind
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Is lets callers match a ValidationError against ErrInvalidAnswer or ErrInvalidRecord.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidAnswer:
		return e.Kind == KindAnswer
	case ErrInvalidRecord:
		return e.Kind == KindRecord
	}
	return false
}

// NewValidationError creates a ValidationError for a trade record field.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Kind:    KindRecord,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewAnswerError creates a ValidationError for a wizard answer.
func NewAnswerError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Kind:    KindAnswer,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IngestError represents a failure while reading a trade log.
// Row is 1-based; zero means the failure is not tied to a row.
type IngestError struct {
	Path string
	Row  int
	Err  error
}

func (e *IngestError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("ingest error [%s] row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("ingest error [%s]: %v", e.Path, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// NewIngestError creates a new IngestError.
func NewIngestError(path string, row int, err error) *IngestError {
	return &IngestError{
		Path: path,
		Row:  row,
		Err:  err,
	}
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigInvalid
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{
		Key:     key,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
