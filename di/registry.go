package di

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Factory builds the instance for a key. It receives the Registry it was
// registered on so it can resolve its own dependencies.
type Factory func(r *Registry) (any, error)

// Registry maps Keys to factories and memoizes what they build.
//
// Each key moves through three states:
//
//	Unregistered -> Registered (factory, no instance) -> Resolved (instance cached)
//
// Resolved is terminal: registering a new factory for a resolved key replaces
// the factory but the cached instance keeps being returned.
//
// The zero value is ready to use. A Registry is not safe for concurrent use.
type Registry struct {
	factories map[Key]Factory
	instances map[Key]any

	// keys currently being built, outermost first
	buildStack []Key

	logger   *slog.Logger
	observer Observer
}

// NewRegistry returns an empty Registry configured by opts.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		factories: make(map[Key]Factory),
		instances: make(map[Key]any),
		observer:  NoopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register stores factory under key, replacing any previous factory for
// exactly that key. The factory is not invoked.
//
// No check is made that factory produces a value of key.Type.
func (r *Registry) Register(key Key, factory Factory) {
	if r.factories == nil {
		r.factories = make(map[Key]Factory)
	}
	r.factories[key] = factory
	r.obs().Registered(key)
	r.logRegistered(key)
}

// Resolve returns the instance for key, invoking its factory on first use.
//
// It returns:
//   - the cached instance, without side effects, if key was resolved before
//   - NotFoundError if key has no factory
//   - NilFactoryError if key was registered with a nil factory
//   - CyclicDependencyError if key is already being built further up the call chain
//   - the factory's own error, unmodified
//
// Nothing is cached when the factory fails, so a later call retries it.
func (r *Registry) Resolve(key Key) (any, error) {
	if inst, ok := r.instances[key]; ok {
		r.obs().CacheHit(key)
		return inst, nil
	}

	factory, ok := r.factories[key]
	if !ok {
		r.obs().NotFound(key)
		return nil, &NotFoundError{Key: key}
	}
	if factory == nil {
		return nil, &NilFactoryError{Key: key}
	}

	if i := slices.Index(r.buildStack, key); i >= 0 {
		chain := append(slices.Clone(r.buildStack[i:]), key)
		return nil, &CyclicDependencyError{Chain: chain}
	}

	r.buildStack = append(r.buildStack, key)
	defer func() { r.buildStack = r.buildStack[:len(r.buildStack)-1] }()

	start := time.Now()
	inst, err := factory(r)
	elapsed := time.Since(start)

	r.obs().FactoryInvoked(key, elapsed, err)
	if err != nil {
		r.logFailed(key, err)
		return nil, err
	}

	if r.instances == nil {
		r.instances = make(map[Key]any)
	}
	r.instances[key] = inst
	r.logResolved(key, elapsed)
	return inst, nil
}

// Registered reports whether a factory is stored for key.
func (r *Registry) Registered(key Key) bool {
	_, ok := r.factories[key]
	return ok
}

// Resolved reports whether an instance is cached for key.
func (r *Registry) Resolved(key Key) bool {
	_, ok := r.instances[key]
	return ok
}

// Keys returns every registered or resolved key, sorted by Key.String.
func (r *Registry) Keys() []Key {
	out := make([]Key, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	for k := range r.instances {
		if _, dup := r.factories[k]; !dup {
			out = append(out, k)
		}
	}
	slices.SortFunc(out, func(a, b Key) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

func (r *Registry) obs() Observer {
	if r.observer == nil {
		return NoopObserver{}
	}
	return r.observer
}
