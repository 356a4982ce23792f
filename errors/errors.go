package errors

import (
	"fmt"
)

// AppError is the unified error type of the resolver packages.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Resolver Error Constructors ---

// CollectionDisposed creates an AppError for access to a disposed collection.
func CollectionDisposed() *AppError {
	return &AppError{
		Code:    ErrCodeCollectionDisposed,
		Message: "dependency collection is not accessible after it disposes",
	}
}

// InvalidBinding creates an AppError for a binding that cannot be stored.
func InvalidBinding(key, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidBinding, Message: fmt.Sprintf("invalid binding for %q: %s", key, reason),
		Details: map[string]any{"key": key},
	}
}

// Unresolved creates an AppError for a key no injector provides.
func Unresolved(key string) *AppError {
	return &AppError{
		Code: ErrCodeUnresolved, Message: fmt.Sprintf("%q is not provided by any injector", key),
		Details: map[string]any{"key": key},
	}
}

// MissingDependency creates an AppError for a required constructor dependency
// that resolved to nothing.
func MissingDependency(typeName, key string) *AppError {
	return &AppError{
		Code: ErrCodeMissingDependency, Message: fmt.Sprintf("%q relies on a not provided dependency %q", typeName, key),
		Details: map[string]any{"type": typeName, "key": key},
	}
}

// CircularDependency creates an AppError for a construction chain deeper than limit.
func CircularDependency(key string, limit int) *AppError {
	return &AppError{
		Code: ErrCodeCircularDependency,
		Message: fmt.Sprintf("construction exceeds the limitation of recursion (%dx); "+
			"there might be a circular dependency among your dependency items; last target was %q", limit, key),
		Details: map[string]any{"key": key, "limit": limit},
	}
}

// InvalidConstructor creates an AppError for a constructor that cannot be called.
func InvalidConstructor(typeName, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConstructor, Message: fmt.Sprintf("cannot construct %q: %s", typeName, reason),
		Details: map[string]any{"type": typeName},
	}
}

// ConstructionFailed creates an AppError wrapping a constructor or factory failure.
func ConstructionFailed(name string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConstructionFailed, Message: fmt.Sprintf("failed to construct %q", name),
		Details: map[string]any{"type": name}, Cause: cause,
	}
}

// TypeMismatch creates an AppError for a value of the wrong type.
func TypeMismatch(expected, got string) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("expected %s, got %s", expected, got),
		Details: map[string]any{"expected": expected, "got": got},
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}
