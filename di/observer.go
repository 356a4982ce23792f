package di

import "time"

// ConstructEvent describes one class construction or factory call.
type ConstructEvent struct {
	InjectorID string
	Key        Key
	Kind       BindingKind
	Depth      int
	Start      time.Time
	Duration   time.Duration
	Err        error
}

// Observer is notified after every construction attempt that entered the
// depth check.
type Observer interface {
	ObserveConstruct(ev ConstructEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev ConstructEvent)

// ObserveConstruct calls f(ev).
func (f ObserverFunc) ObserveConstruct(ev ConstructEvent) { f(ev) }

type nopObserver struct{}

func (nopObserver) ObserveConstruct(ConstructEvent) {}
