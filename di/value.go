package di

// Value is a lazily constructed, memoized value with no registry behind it.
//
// The factory runs on the first call to Value and, once it succeeds, never
// again. Dependencies are expressed by letting the factory close over other
// Values:
//
//	store := di.Lazy(func() Store { return NewStore() })
//	svc := di.NewValue(func() (*Service, error) {
//		s, err := store.Value()
//		if err != nil {
//			return nil, err
//		}
//		return NewService(s), nil
//	})
//
// A Value is not safe for concurrent use.
type Value[T any] struct {
	factory  func() (T, error)
	value    T
	resolved bool
	building bool
}

// NewValue returns an unresolved Value. factory is not invoked.
func NewValue[T any](factory func() (T, error)) *Value[T] {
	return &Value[T]{factory: factory}
}

// Lazy is NewValue for factories that cannot fail.
func Lazy[T any](factory func() T) *Value[T] {
	if factory == nil {
		return &Value[T]{}
	}
	return NewValue(func() (T, error) { return factory(), nil })
}

// Value returns the memoized result, invoking the factory if this is the
// first successful call.
//
// A factory error is returned as is and leaves the Value unresolved, so the
// next call invokes the factory again. ErrNilFactory is returned for a Value
// built without a factory, and ErrCyclicDependency when the factory reaches
// back into its own Value.
func (v *Value[T]) Value() (T, error) {
	if v.resolved {
		return v.value, nil
	}

	var zero T
	if v.factory == nil {
		return zero, ErrNilFactory
	}
	if v.building {
		return zero, ErrCyclicDependency
	}

	v.building = true
	defer func() { v.building = false }()

	val, err := v.factory()
	if err != nil {
		return zero, err
	}

	v.value = val
	v.resolved = true
	return v.value, nil
}

// MustValue is like Value but panics on error.
func (v *Value[T]) MustValue() T {
	val, err := v.Value()
	if err != nil {
		panic(err)
	}
	return val
}

// Resolved reports whether the factory has already succeeded.
func (v *Value[T]) Resolved() bool { return v.resolved }
