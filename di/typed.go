package di

import "reflect"

// Provide registers a typed factory for T under the given name (DefaultName if omitted).
//
//	di.Provide(r, func(r *di.Registry) (Store, error) { return NewStore(), nil })
//	di.Provide(r, di.Wrap(func() (string, error) { return "Hi", nil }), "hello-prefix")
func Provide[T any](r *Registry, factory func(r *Registry) (T, error), name ...string) {
	key := KeyOf[T](name...)
	if factory == nil {
		r.Register(key, nil)
		return
	}
	r.Register(key, func(r *Registry) (any, error) {
		v, err := factory(r)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Invoke resolves the singleton T registered under name (DefaultName if omitted).
//
// Besides Resolve's errors it returns WrongTypeError when the instance stored
// under the key is not a T, which only happens if the key was registered
// through the untyped Register with a mismatching factory.
func Invoke[T any](r *Registry, name ...string) (T, error) {
	var zero T

	key := KeyOf[T](name...)
	raw, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}

	if raw == nil {
		// A nil interface instance is a valid T only when T can hold nil.
		if canBeNil(key.Type) {
			return zero, nil
		}
		return zero, &WrongTypeError{Key: key, Got: "<nil>", Want: typeName(key.Type)}
	}

	v, ok := raw.(T)
	if !ok {
		return zero, &WrongTypeError{
			Key:  key,
			Got:  reflect.TypeOf(raw).String(),
			Want: typeName(key.Type),
		}
	}
	return v, nil
}

// MustInvoke is like Invoke but panics on error.
// Useful in composition roots and tests where a wiring mistake should fail fast.
func MustInvoke[T any](r *Registry, name ...string) T {
	v, err := Invoke[T](r, name...)
	if err != nil {
		panic(err)
	}
	return v
}

// Wrap adapts a factory that needs no registry access to the shape Provide
// and Register expect. The registry argument is ignored and nothing is cached
// by the wrapper itself.
func Wrap[T any](factory func() (T, error)) func(r *Registry) (T, error) {
	return func(_ *Registry) (T, error) {
		return factory()
	}
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
