package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error types for the cognate feature engine
type ErrorType string

const (
	// Strategy wiring errors
	ErrorTypeMeasure       ErrorType = "measure"
	ErrorTypeFeatureLength ErrorType = "feature_length"

	// Input errors
	ErrorTypeInput ErrorType = "input"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

var (
	// ErrUnknownMeasure is returned when a measure name is not registered
	ErrUnknownMeasure = errors.New("unknown measure")

	// ErrFinalized is returned when a finalized builder is asked to append
	ErrFinalized = errors.New("builder already finalized")
)

// MeasureError reports a strategy that references a measure which does not exist
type MeasureError struct {
	Type       ErrorType
	Name       string
	Underlying error
	Timestamp  time.Time
}

// NewMeasureError creates a new measure error for the given measure name
func NewMeasureError(name string) *MeasureError {
	return &MeasureError{
		Type:       ErrorTypeMeasure,
		Name:       name,
		Underlying: ErrUnknownMeasure,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *MeasureError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Type, e.Name, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *MeasureError) Unwrap() error {
	return e.Underlying
}

// FeatureLengthError reports a feature block whose output length differs from
// its declared width
type FeatureLengthError struct {
	Type      ErrorType
	Block     string
	Declared  int
	Actual    int
	Row       int
	Timestamp time.Time
}

// NewFeatureLengthError creates a new feature length error
func NewFeatureLengthError(block string, row, declared, actual int) *FeatureLengthError {
	return &FeatureLengthError{
		Type:      ErrorTypeFeatureLength,
		Block:     block,
		Declared:  declared,
		Actual:    actual,
		Row:       row,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *FeatureLengthError) Error() string {
	return fmt.Sprintf("feature length mismatch in block %s at row %d: declared %d, got %d",
		e.Block, e.Row, e.Declared, e.Actual)
}

// InputError represents a malformed line in an input file
type InputError struct {
	Type       ErrorType
	Path       string
	Line       int
	Underlying error
	Timestamp  time.Time
}

// NewInputError creates a new input error
func NewInputError(path string, line int, err error) *InputError {
	return &InputError{
		Type:       ErrorTypeInput,
		Path:       path,
		Line:       line,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("input error at %s:%d: %v", e.Path, e.Line, e.Underlying)
	}
	return fmt.Sprintf("input error in %s: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *InputError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
