// Package errors provides centralized error handling with category and
// component metadata for consistent reporting across the ingestion pipelines.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"runtime"
	"strings"
	"sync"
	"time"
)

// ErrorCategory represents the type of error for better categorization
type ErrorCategory string

const (
	CategoryValidation       ErrorCategory = "validation"
	CategoryFileIO           ErrorCategory = "file-io"
	CategoryFileParsing      ErrorCategory = "file-parsing"
	CategoryDatabase         ErrorCategory = "database"
	CategoryConfiguration    ErrorCategory = "configuration"
	CategoryCommandExecution ErrorCategory = "command-execution"
	CategoryTimeout          ErrorCategory = "timeout"
	CategoryNotFound         ErrorCategory = "not-found"
	CategorySystem           ErrorCategory = "system-resource"
	CategoryGeneric          ErrorCategory = "generic"
)

// ComponentUnknown is used when the component cannot be determined.
const ComponentUnknown = "unknown"

// EnhancedError wraps an error with additional context and metadata
type EnhancedError struct {
	Err       error          // Original error
	component string         // Component where error occurred (lazily detected)
	Category  ErrorCategory  // Error category for better grouping
	Context   map[string]any // Additional context data
	Timestamp time.Time      // When the error occurred
	mu        sync.RWMutex   // Protects lazy component detection
	detected  bool           // Whether component has been auto-detected
}

// Error implements the error interface
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is implements error type checking; two enhanced errors match on category.
func (ee *EnhancedError) Is(target error) bool {
	var ee2 *EnhancedError
	if stderrors.As(target, &ee2) {
		return ee.Category == ee2.Category
	}
	return stderrors.Is(ee.Err, target)
}

// GetComponent returns the component name, detecting it lazily if needed
func (ee *EnhancedError) GetComponent() string {
	ee.mu.RLock()
	if ee.detected || ee.component != "" {
		component := ee.component
		ee.mu.RUnlock()
		return component
	}
	ee.mu.RUnlock()

	ee.mu.Lock()
	defer ee.mu.Unlock()
	if ee.component == "" && !ee.detected {
		ee.component = detectComponent()
		ee.detected = true
		if ee.component == "" {
			ee.component = ComponentUnknown
		}
	}
	return ee.component
}

// GetCategory returns the error category
func (ee *EnhancedError) GetCategory() string {
	return string(ee.Category)
}

// GetContext returns a copy of the context map
func (ee *EnhancedError) GetContext() map[string]any {
	out := make(map[string]any, len(ee.Context))
	maps.Copy(out, ee.Context)
	return out
}

// ErrorBuilder provides a fluent interface for constructing enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new ErrorBuilder wrapping the given error
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err:      err,
		category: CategoryGeneric,
		context:  make(map[string]any),
	}
}

// Newf creates a new ErrorBuilder from a formatted message
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name explicitly, bypassing auto-detection
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds a key-value pair to the error context
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// Timing records an operation name and its duration in the error context
func (eb *ErrorBuilder) Timing(operation string, duration time.Duration) *ErrorBuilder {
	eb.context["operation"] = operation
	eb.context["duration_ms"] = duration.Milliseconds()
	return eb
}

// Build constructs the final EnhancedError
func (eb *ErrorBuilder) Build() *EnhancedError {
	return &EnhancedError{
		Err:       eb.err,
		component: eb.component,
		Category:  eb.category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
}

var (
	componentRegistry   = map[string]string{}
	componentRegistryMu sync.RWMutex
)

// RegisterComponent maps a package import path fragment to a component name
// used in error reports. Packages register themselves in init().
func RegisterComponent(packagePattern, componentName string) {
	componentRegistryMu.Lock()
	defer componentRegistryMu.Unlock()
	componentRegistry[packagePattern] = componentName
}

// detectComponent walks the call stack looking for a registered package.
func detectComponent() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	componentRegistryMu.RLock()
	defer componentRegistryMu.RUnlock()

	for {
		frame, more := frames.Next()
		for pattern, component := range componentRegistry {
			if strings.Contains(frame.Function, pattern) {
				return component
			}
		}
		if !more {
			break
		}
	}
	return ""
}

// ValidationError creates a validation error from a message
func ValidationError(message string) *EnhancedError {
	return Newf("%s", message).Category(CategoryValidation).Build()
}

// NewStd creates a plain standard error without enhancement
func NewStd(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// IsCategory checks whether err carries the given category
func IsCategory(err error, category ErrorCategory) bool {
	var ee *EnhancedError
	if stderrors.As(err, &ee) {
		return ee.Category == category
	}
	return false
}

// IsNotFound checks whether err is a not-found error
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}
