package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/scopedi/errors"
	"github.com/kbukum/scopedi/logger"
)

var lazyType = reflect.TypeFor[*Lazy]()

// createInstance resolves the requirements of class in index order and
// calls its constructor with extra followed by the resolved dependencies.
func (i *Injector) createInstance(class *Class, extra []any, depth int) (any, error) {
	if class.invalid != "" {
		return nil, errors.InvalidConstructor(class.name, class.invalid)
	}

	reqs := i.opts.metadata.Requirements(class)
	deps := make([]any, len(reqs))
	for n, r := range reqs {
		v, err := i.resolve(r.Key, true, depth)
		if err != nil {
			return nil, err
		}
		if v == nil && !r.Optional {
			return nil, errors.MissingDependency(class.name, r.Key.KeyName())
		}
		deps[n] = v
	}

	fnType := class.fn.Type()
	expected := fnType.NumIn()
	if len(reqs) > 0 {
		expected = reqs[0].Index
	}
	if len(extra) != expected {
		i.log.Warn(fmt.Sprintf("expected %d non-injected parameters but %d parameters are provided", expected, len(extra)),
			logger.Fields(logger.FieldType, class.name, logger.FieldExpected, expected, logger.FieldProvided, len(extra)))
		adjusted := make([]any, expected)
		copy(adjusted, extra)
		extra = adjusted
	}

	args := make([]any, 0, len(extra)+len(deps))
	args = append(args, extra...)
	args = append(args, deps...)
	if len(args) != fnType.NumIn() {
		return nil, errors.InvalidConstructor(class.name,
			fmt.Sprintf("constructor takes %d parameters but %d arguments were assembled", fnType.NumIn(), len(args)))
	}

	in := make([]reflect.Value, len(args))
	for n, arg := range args {
		v, err := argValue(arg, fnType.In(n))
		if err != nil {
			return nil, err
		}
		in[n] = v
	}

	var results []reflect.Value
	if fnType.IsVariadic() {
		results = class.fn.CallSlice(in)
	} else {
		results = class.fn.Call(in)
	}
	return handleConstructorResults(class, results)
}

// argValue converts arg for a parameter of type t. nil becomes the zero
// value; a *Lazy passed to a parameter of another type is forced.
func argValue(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if l, ok := arg.(*Lazy); ok && t != lazyType {
		forced, err := l.Value()
		if err != nil {
			return reflect.Value{}, err
		}
		return argValue(forced, t)
	}
	return reflect.Value{}, errors.TypeMismatch(t.String(), v.Type().String())
}

func handleConstructorResults(class *Class, results []reflect.Value) (any, error) {
	if len(results) == 2 && !results[1].IsNil() {
		return nil, errors.ConstructionFailed(class.name, results[1].Interface().(error))
	}
	return results[0].Interface(), nil
}
