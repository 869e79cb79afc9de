package di

import (
	"reflect"
	"strconv"
)

// DefaultName is the name used when a registration or lookup does not give one.
const DefaultName = "default"

// Key identifies a registration: the contract being satisfied plus a name.
//
// Type is treated as an opaque tag. It is never inspected beyond equality,
// and nothing checks that a factory really produces a value of that type.
type Key struct {
	Type reflect.Type
	Name string
}

// NewKey builds a Key for tag. An empty name becomes DefaultName.
func NewKey(tag reflect.Type, name string) Key {
	if name == "" {
		name = DefaultName
	}
	return Key{Type: tag, Name: name}
}

// KeyOf builds the Key for the static type T.
//
// At most one name is used; omitting it (or passing "") selects DefaultName.
func KeyOf[T any](name ...string) Key {
	return NewKey(TypeOf[T](), nameOf(name))
}

// TypeOf returns the type tag for T. Interface types are kept as interfaces,
// so TypeOf[io.Reader]() and TypeOf[*os.File]() are different tags.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// String renders the key as `type[name]`, e.g. `*app.Service[default]`.
func (k Key) String() string {
	return typeName(k.Type) + "[" + k.Name + "]"
}

func (k Key) quoted() string {
	return strconv.Quote(typeName(k.Type)) + " (name " + strconv.Quote(k.Name) + ")"
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func nameOf(names []string) string {
	if len(names) == 0 || names[0] == "" {
		return DefaultName
	}
	return names[0]
}
