// Package di provides a minimal, explicit dependency injection registry for Go.
//
// Two independent building blocks are offered:
//
//   - Registry: a keyed factory registry. A factory is registered for a Key
//     (a type tag plus a name) and resolved later into a lazily constructed,
//     memoized singleton. Factories receive the Registry itself so they can
//     resolve their own dependencies.
//
//   - Value[T]: a single lazy, memoized cell with no registry involved.
//     Dependencies are wired by closures that capture other cells directly.
//
// Neither block uses reflection for injection. Type tags are reflect.Type values
// used only as map keys; callers name the type explicitly through generics.
//
// Quick guidance
//
// Use Registry when you want:
//   - Named variants of the same contract ("primary" and "replica" stores)
//   - A single composition root that registers everything up front
//   - Introspection (Registered, Resolved, Keys) in tests
//
// Use Value[T] when you want:
//   - Plain closures and no keys at all
//   - Compile-time wiring: a missing dependency is a missing variable
//
// Registry
//
//	r := di.NewRegistry()
//	di.Provide(r, func(r *di.Registry) (Store, error) {
//		return NewFakeStore(map[int]string{7: "Alice"}), nil
//	})
//	di.Provide(r, di.Wrap(func() (string, error) { return "Hi", nil }), "hello-prefix")
//	di.Provide(r, func(r *di.Registry) (*Service, error) {
//		store, err := di.Invoke[Store](r)
//		if err != nil {
//			return nil, err
//		}
//		prefix, err := di.Invoke[string](r, "hello-prefix")
//		if err != nil {
//			return nil, err
//		}
//		return NewService(store, prefix), nil
//	})
//
//	svc, err := di.Invoke[*Service](r)
//
// Value
//
//	var store *di.Value[Store]
//	service := di.NewValue(func() (*Service, error) {
//		s, err := store.Value()
//		if err != nil {
//			return nil, err
//		}
//		return NewService(s, "Hi"), nil
//	})
//	store = di.Lazy(func() Store { return NewFakeStore(map[int]string{3: "Bob"}) })
//
// Concurrency
//
// Registry and Value are not safe for concurrent use. Wire the graph from one
// goroutine (typically main) before handing resolved instances to others.
//
// Import
//
//	"github.com/sghaida/luckydep/di"
package di
