package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Collection errors
const (
	// ErrCodeCollectionDisposed indicates access to a disposed dependency collection.
	ErrCodeCollectionDisposed ErrorCode = "COLLECTION_DISPOSED"
	// ErrCodeInvalidBinding indicates a binding that cannot be stored for its key.
	ErrCodeInvalidBinding ErrorCode = "INVALID_BINDING"
)

// Resolution errors
const (
	// ErrCodeUnresolved indicates no injector in the chain provides the key.
	ErrCodeUnresolved ErrorCode = "UNRESOLVED_DEPENDENCY"
	// ErrCodeMissingDependency indicates a required constructor dependency is absent.
	ErrCodeMissingDependency ErrorCode = "MISSING_DEPENDENCY"
	// ErrCodeCircularDependency indicates the construction depth limit was exceeded.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
)

// Construction errors
const (
	// ErrCodeInvalidConstructor indicates a constructor whose shape cannot be called.
	ErrCodeInvalidConstructor ErrorCode = "INVALID_CONSTRUCTOR"
	// ErrCodeConstructionFailed indicates a constructor or factory returned an error.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
	// ErrCodeTypeMismatch indicates a value not assignable to the expected type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates invalid configuration input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)
