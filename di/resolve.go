package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/scopedi/errors"
)

// MustResolve resolves key with type safety and panics on error.
//
// Example:
//
//	store := di.MustResolve[*Store](inj, StoreClass)
func MustResolve[T any](inj *Injector, key Key) T {
	v, err := Resolve[T](inj, key)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", key.KeyName(), err))
	}
	return v
}

// Resolve resolves key and converts the instance to T. A *Lazy handle is
// forced when T is not *Lazy.
//
// Example:
//
//	log, err := di.Resolve[Logger](inj, LogKey)
//	if err != nil {
//	    return fmt.Errorf("resolve log: %w", err)
//	}
func Resolve[T any](inj *Injector, key Key) (T, error) {
	v, err := inj.Resolve(key)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v)
}

// TryResolve resolves an optional key. It returns false when key is not bound,
// resolution fails or the instance is not a T.
//
// Example:
//
//	if metrics, ok := di.TryResolve[Metrics](inj, MetricsKey); ok {
//	    metrics.Record(...)
//	}
func TryResolve[T any](inj *Injector, key Key) (T, bool) {
	var zero T
	v, err := inj.ResolveOptional(key)
	if err != nil || v == nil {
		return zero, false
	}
	t, err := cast[T](v)
	if err != nil {
		return zero, false
	}
	return t, true
}

// Get peeks at an already materialized instance without constructing
// anything. Lazy handles are returned only when T is *Lazy or the proxy type.
func Get[T any](inj *Injector, key Key) (T, bool) {
	var zero T
	v, err := inj.Get(key)
	if err != nil || v == nil {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// CreateInstance constructs class and converts the result to T.
func CreateInstance[T any](inj *Injector, class *Class, extra ...any) (T, error) {
	v, err := inj.CreateInstance(class, extra...)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v)
}

// LazyValue forces l and converts the instance to T.
func LazyValue[T any](l *Lazy) (T, error) {
	v, err := l.Value()
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v)
}

func cast[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	if l, ok := v.(*Lazy); ok {
		return LazyValue[T](l)
	}
	var zero T
	return zero, errors.TypeMismatch(reflect.TypeFor[T]().String(), fmt.Sprintf("%T", v))
}
