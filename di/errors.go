package di

import "github.com/kbukum/scopedi/errors"

// Sentinels for errors.Is. Resolver errors are *errors.AppError values that
// match these by code.
var (
	ErrCollectionDisposed   = errors.New(errors.ErrCodeCollectionDisposed, "")
	ErrInvalidBinding       = errors.New(errors.ErrCodeInvalidBinding, "")
	ErrUnresolvedDependency = errors.New(errors.ErrCodeUnresolved, "")
	ErrMissingDependency    = errors.New(errors.ErrCodeMissingDependency, "")
	ErrCircularDependency   = errors.New(errors.ErrCodeCircularDependency, "")
	ErrInvalidConstructor   = errors.New(errors.ErrCodeInvalidConstructor, "")
	ErrConstructionFailed   = errors.New(errors.ErrCodeConstructionFailed, "")
	ErrTypeMismatch         = errors.New(errors.ErrCodeTypeMismatch, "")
)
