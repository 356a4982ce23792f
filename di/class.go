package di

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

var errorType = reflect.TypeFor[error]()

var classSeq atomic.Uint64

// Class is a constructible type: a constructor function plus a stable
// identity token used by the Metadata registry. A *Class is itself a Key.
//
// Supported constructor shapes are func(args...) T and
// func(args...) (T, error).
type Class struct {
	id      uint64
	name    string
	fn      reflect.Value
	invalid string
}

// ClassOption configures a Class at declaration time.
type ClassOption func(*classDecl)

type classDecl struct {
	name     string
	parent   *Class
	requires []Requirement
}

// WithName overrides the display name derived from the constructor result type.
func WithName(name string) ClassOption {
	return func(d *classDecl) { d.name = name }
}

// Need declares that constructor parameter index is injected from key.
func Need(index int, key Key) ClassOption {
	return func(d *classDecl) {
		d.requires = append(d.requires, Requirement{Key: key, Index: index})
	}
}

// Optional declares an injected parameter that receives the zero value when
// key is not provided.
func Optional(index int, key Key) ClassOption {
	return func(d *classDecl) {
		d.requires = append(d.requires, Requirement{Key: key, Index: index, Optional: true})
	}
}

// Extends links the class to parent so it inherits the parent's requirements
// when it declares none of its own.
func Extends(parent *Class) ClassOption {
	return func(d *classDecl) { d.parent = parent }
}

// NewClass declares a constructible type. Requirements and the parent link
// are recorded in DefaultMetadata.
func NewClass(constructor any, opts ...ClassOption) *Class {
	var decl classDecl
	for _, opt := range opts {
		opt(&decl)
	}

	c := &Class{
		id: classSeq.Add(1),
		fn: reflect.ValueOf(constructor),
	}
	c.invalid = checkConstructor(c.fn)
	c.name = decl.name
	if c.name == "" {
		c.name = deriveName(c.fn, constructor)
	}

	m := DefaultMetadata()
	if decl.parent != nil {
		m.SetParent(c, decl.parent)
	}
	for _, r := range decl.requires {
		m.Declare(c, r.Key, r.Index, r.Optional)
	}
	return c
}

// KeyName returns the class display name.
func (c *Class) KeyName() string { return c.name }

// Name returns the class display name.
func (c *Class) Name() string { return c.name }

// ID returns the identity token of the class.
func (c *Class) ID() uint64 { return c.id }

func (c *Class) String() string { return c.name }

// NumIn returns the constructor parameter count, or 0 for an invalid constructor.
func (c *Class) NumIn() int {
	if c.invalid != "" {
		return 0
	}
	return c.fn.Type().NumIn()
}

func checkConstructor(fn reflect.Value) string {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return "constructor must be a function"
	}
	if fn.IsNil() {
		return "constructor is nil"
	}
	t := fn.Type()
	switch t.NumOut() {
	case 1:
		return ""
	case 2:
		if t.Out(1) != errorType {
			return "second result must be an error"
		}
		return ""
	default:
		return "constructor must return either (instance) or (instance, error)"
	}
}

func deriveName(fn reflect.Value, constructor any) string {
	if fn.IsValid() && fn.Kind() == reflect.Func && fn.Type().NumOut() > 0 {
		return fn.Type().Out(0).String()
	}
	return fmt.Sprintf("%T", constructor)
}
