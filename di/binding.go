package di

// BindingKind tags the variants of Binding.
type BindingKind int

const (
	KindPending BindingKind = iota
	KindValue
	KindClass
	KindFactory
)

func (k BindingKind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindValue:
		return "value"
	case KindClass:
		return "class"
	case KindFactory:
		return "factory"
	default:
		return "unknown"
	}
}

// Binding describes how a key is satisfied. The set of variants is closed:
// PendingConstruction, ValueBinding, ClassBinding and FactoryBinding.
type Binding interface {
	Kind() BindingKind
	binding()
}

// PendingConstruction constructs Class the first time it is requested.
type PendingConstruction struct {
	Class *Class
}

// ValueBinding holds a materialized instance.
type ValueBinding struct {
	Value any
}

// ClassBinding constructs Class, deferring construction when Lazy is set.
// Proxy, when non-nil, wraps the lazy handle in a value exposing the
// target's interface; it is ignored for eager bindings.
type ClassBinding struct {
	Class *Class
	Lazy  bool
	Proxy func(*Lazy) any
}

// FactoryBinding calls Factory with Deps resolved in order. Missing deps are
// passed as nil.
type FactoryBinding struct {
	Factory func(deps []any) (any, error)
	Deps    []Key
}

func (PendingConstruction) Kind() BindingKind { return KindPending }
func (ValueBinding) Kind() BindingKind        { return KindValue }
func (ClassBinding) Kind() BindingKind        { return KindClass }
func (FactoryBinding) Kind() BindingKind      { return KindFactory }

func (PendingConstruction) binding() {}
func (ValueBinding) binding()        {}
func (ClassBinding) binding()        {}
func (FactoryBinding) binding()      {}

// UseValue binds a precomputed instance.
func UseValue(v any) Binding { return ValueBinding{Value: v} }

// UseClass binds a class constructed on first request.
func UseClass(c *Class) Binding { return ClassBinding{Class: c} }

// UseLazyClass binds a class constructed on first use of its handle.
// proxy may be nil, in which case resolution yields the *Lazy handle.
func UseLazyClass(c *Class, proxy func(*Lazy) any) Binding {
	return ClassBinding{Class: c, Lazy: true, Proxy: proxy}
}

// UseFactory binds the result of calling fn with deps resolved.
func UseFactory(fn func(deps []any) (any, error), deps ...Key) Binding {
	return FactoryBinding{Factory: fn, Deps: deps}
}

// Item is an entry passed to NewCollection.
type Item struct {
	key     Key
	binding Binding
}

// Provide registers a class under itself as a pending construction.
func Provide(c *Class) Item {
	return Item{key: c, binding: PendingConstruction{Class: c}}
}

// Bind registers binding under key.
func Bind(key Key, binding Binding) Item {
	return Item{key: key, binding: binding}
}

// Key returns the item key.
func (it Item) Key() Key { return it.key }

// Binding returns the item binding.
func (it Item) Binding() Binding { return it.binding }
