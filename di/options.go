package di

import (
	"log/slog"
	"time"
)

// Observer receives resolution events from a Registry.
//
// Implementations must not call back into the Registry.
// See package di/diotel for an OpenTelemetry implementation.
type Observer interface {
	// Registered is called after a factory is stored under key.
	Registered(key Key)

	// CacheHit is called when Resolve returns a memoized instance.
	CacheHit(key Key)

	// FactoryInvoked is called after a factory returns, with its error if any.
	FactoryInvoked(key Key, duration time.Duration, err error)

	// NotFound is called when Resolve fails because key has no factory.
	NotFound(key Key)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) Registered(Key)                           {}
func (NoopObserver) CacheHit(Key)                             {}
func (NoopObserver) FactoryInvoked(Key, time.Duration, error) {}
func (NoopObserver) NotFound(Key)                             {}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a structured logger for registration and resolution events.
// A nil logger keeps the Registry silent, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithObserver installs obs. A nil observer is replaced by NoopObserver.
func WithObserver(obs Observer) Option {
	return func(r *Registry) {
		if obs == nil {
			obs = NoopObserver{}
		}
		r.observer = obs
	}
}

func (r *Registry) logRegistered(key Key) {
	if r.logger == nil {
		return
	}
	r.logger.Debug("factory registered",
		slog.String("type", typeName(key.Type)),
		slog.String("name", key.Name),
	)
}

func (r *Registry) logResolved(key Key, d time.Duration) {
	if r.logger == nil {
		return
	}
	r.logger.Debug("instance resolved",
		slog.String("type", typeName(key.Type)),
		slog.String("name", key.Name),
		slog.Float64("duration_ms", float64(d.Microseconds())/1000),
	)
}

func (r *Registry) logFailed(key Key, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn("factory failed",
		slog.String("type", typeName(key.Type)),
		slog.String("name", key.Name),
		slog.String("error", err.Error()),
	)
}
