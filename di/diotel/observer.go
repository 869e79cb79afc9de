// Package diotel reports di.Registry activity as OpenTelemetry metrics.
//
//	obs, err := diotel.NewObserver(otel.Meter("myapp"))
//	if err != nil {
//		return err
//	}
//	r := di.NewRegistry(di.WithObserver(obs))
//
// Every instrument carries the registration's type and name as the
// "type" and "name" attributes.
package diotel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sghaida/luckydep/di"
)

// ScopeName is the instrumentation scope used when NewObserver gets a nil meter.
const ScopeName = "github.com/sghaida/luckydep/di"

// Instrument names.
const (
	MetricRegistrations      = "luckydep.registrations"
	MetricCacheHits          = "luckydep.cache_hits"
	MetricFactoryInvocations = "luckydep.factory_invocations"
	MetricFactoryDuration    = "luckydep.factory_duration_ms"
	MetricNotFound           = "luckydep.not_found"
)

// Observer implements di.Observer with OTel instruments.
type Observer struct {
	registrations metric.Int64Counter
	cacheHits     metric.Int64Counter
	invocations   metric.Int64Counter
	duration      metric.Float64Histogram
	notFound      metric.Int64Counter
}

var _ di.Observer = (*Observer)(nil)

// NewObserver creates the instruments on meter, or on the global
// MeterProvider when meter is nil.
func NewObserver(meter metric.Meter) (*Observer, error) {
	if meter == nil {
		meter = otel.Meter(ScopeName)
	}

	registrations, err := meter.Int64Counter(MetricRegistrations,
		metric.WithDescription("Number of factories registered"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(MetricCacheHits,
		metric.WithDescription("Number of resolutions served from the instance cache"),
	)
	if err != nil {
		return nil, err
	}

	invocations, err := meter.Int64Counter(MetricFactoryInvocations,
		metric.WithDescription("Number of factory invocations"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(MetricFactoryDuration,
		metric.WithDescription("Factory invocation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	notFound, err := meter.Int64Counter(MetricNotFound,
		metric.WithDescription("Number of resolutions for unregistered keys"),
	)
	if err != nil {
		return nil, err
	}

	return &Observer{
		registrations: registrations,
		cacheHits:     cacheHits,
		invocations:   invocations,
		duration:      duration,
		notFound:      notFound,
	}, nil
}

// Registered implements di.Observer.
func (o *Observer) Registered(key di.Key) {
	o.registrations.Add(context.Background(), 1, metric.WithAttributes(keyAttrs(key)...))
}

// CacheHit implements di.Observer.
func (o *Observer) CacheHit(key di.Key) {
	o.cacheHits.Add(context.Background(), 1, metric.WithAttributes(keyAttrs(key)...))
}

// FactoryInvoked implements di.Observer. The invocation counter also carries
// an "error" attribute.
func (o *Observer) FactoryInvoked(key di.Key, d time.Duration, err error) {
	ctx := context.Background()
	attrs := keyAttrs(key)

	o.invocations.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.Bool("error", err != nil))...))
	o.duration.Record(ctx, float64(d.Microseconds())/1000, metric.WithAttributes(attrs...))
}

// NotFound implements di.Observer.
func (o *Observer) NotFound(key di.Key) {
	o.notFound.Add(context.Background(), 1, metric.WithAttributes(keyAttrs(key)...))
}

func keyAttrs(key di.Key) []attribute.KeyValue {
	typ := "<nil>"
	if key.Type != nil {
		typ = key.Type.String()
	}
	return []attribute.KeyValue{
		attribute.String("type", typ),
		attribute.String("name", key.Name),
	}
}
