// Package errors provides structured error handling for the lcgo pipeline.
// Fatal conditions (bad configuration, malformed input rows, unreadable files)
// are modeled as concrete error types carrying context, while expected
// non-fatal conditions are routed through a process-wide warning handler.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("lcgo-warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the handler invoked for every warning raised by the
// pipeline. Use this to silence or redirect non-fatal conditions such as
// skipped data files.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a non-fatal warning. If a zerolog sink is installed it takes
// precedence over the plain handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// SkippedFileWarning is raised when a data file is excluded from a load, for
// example a legacy OGLE3 file whose name carries no class category segment.
type SkippedFileWarning struct {
	Path   string
	Reason string
}

func (w *SkippedFileWarning) Error() string {
	return fmt.Sprintf("skipping data file %s: %s", w.Path, w.Reason)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *SkippedFileWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("path", w.Path).
		Str("reason", w.Reason).
		Str("type", "SkippedFileWarning")
}

// NewSkippedFileWarning creates a new SkippedFileWarning.
func NewSkippedFileWarning(path, reason string) *SkippedFileWarning {
	return &SkippedFileWarning{Path: path, Reason: reason}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ConfigurationError reports an unusable configuration, such as a sample
// limit exceeding the available population or an empty data directory.
// Per the loading contract it is always fatal, never silently clamped.
type ConfigurationError struct {
	Op      string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("lcgo: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(op, message string) error {
	err := &ConfigurationError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NewConfigurationErrorf creates a ConfigurationError with a formatted
// message and a stack trace.
func NewConfigurationErrorf(op, format string, args ...interface{}) error {
	return NewConfigurationError(op, fmt.Sprintf(format, args...))
}

// MalformedRowError reports a row whose fields could not be parsed, such as a
// non-numeric magnitude or a missing column. It aborts the entire load; there
// is no partial-dataset recovery.
type MalformedRowError struct {
	Path  string
	Line  int
	Field string
	Err   error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lcgo: malformed row %s:%d field %q: %v", e.Path, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("lcgo: malformed row %s:%d field %q", e.Path, e.Line, e.Field)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *MalformedRowError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("line", e.Line).
		Str("field", e.Field).
		Str("type", "MalformedRowError")
}

// NewMalformedRowError creates a MalformedRowError with a stack trace.
func NewMalformedRowError(path string, line int, field string, err error) error {
	rowErr := &MalformedRowError{Path: path, Line: line, Field: field, Err: err}
	return errors.WithStack(rowErr)
}

// NotFittedError reports Predict or Transform being called on a model that
// has not been fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("lcgo: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports mismatched data dimensions, such as a light curve
// whose time, magnitude and error series have unequal lengths.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("lcgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("lcgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")
)
