package diotel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/sghaida/luckydep/di"
	"github.com/sghaida/luckydep/di/diotel"
)

//
// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// newTestObserver returns an Observer backed by a ManualReader.
func newTestObserver(t *testing.T) (*diotel.Observer, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	obs, err := diotel.NewObserver(provider.Meter("diotel-test"))
	require.NoError(t, err)
	return obs, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

// sumFor returns the counter value for the data point whose attributes include attrs.
func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T, want Sum[int64]", m.Name, m.Data)

	var total int64
	for _, dp := range sum.DataPoints {
		match := true
		for _, kv := range attrs {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v.Emit() != kv.Value.Emit() {
				match = false
				break
			}
		}
		if match {
			total += dp.Value
		}
	}
	return total
}

//
// -----------------------------------------------------------------------------
// NewObserver
// -----------------------------------------------------------------------------

func TestNewObserver_NilMeterUsesGlobal(t *testing.T) {
	t.Parallel()

	obs, err := diotel.NewObserver(nil)
	require.NoError(t, err)
	require.NotNil(t, obs)

	require.NotPanics(t, func() { obs.Registered(di.KeyOf[int]()) })
}

func TestNewObserver_NoopMeter(t *testing.T) {
	t.Parallel()

	obs, err := diotel.NewObserver(noop.NewMeterProvider().Meter("noop"))
	require.NoError(t, err)

	r := di.NewRegistry(di.WithObserver(obs))
	di.Provide(r, di.Wrap(func() (int, error) { return 1, nil }))
	assert.Equal(t, 1, di.MustInvoke[int](r))
}

//
// -----------------------------------------------------------------------------
// Registry integration
// -----------------------------------------------------------------------------

func TestObserver_RecordsRegistryActivity(t *testing.T) {
	t.Parallel()

	obs, reader := newTestObserver(t)
	r := di.NewRegistry(di.WithObserver(obs))

	fail := true
	di.Provide(r, func(*di.Registry) (string, error) {
		if fail {
			fail = false
			return "", errors.New("boom")
		}
		return "Hi", nil
	}, "prefix")

	_, err := di.Invoke[string](r, "prefix")
	require.Error(t, err)
	_ = di.MustInvoke[string](r, "prefix")
	_ = di.MustInvoke[string](r, "prefix")
	_ = di.MustInvoke[string](r, "prefix")
	_, err = di.Invoke[int](r)
	require.ErrorIs(t, err, di.ErrNotFound)

	metrics := collect(t, reader)
	prefixAttrs := []attribute.KeyValue{attribute.String("type", "string"), attribute.String("name", "prefix")}

	assert.Equal(t, int64(1), sumFor(t, metrics[diotel.MetricRegistrations], prefixAttrs...))
	assert.Equal(t, int64(2), sumFor(t, metrics[diotel.MetricCacheHits], prefixAttrs...))
	assert.Equal(t, int64(1), sumFor(t, metrics[diotel.MetricFactoryInvocations],
		append(prefixAttrs, attribute.Bool("error", true))...))
	assert.Equal(t, int64(1), sumFor(t, metrics[diotel.MetricFactoryInvocations],
		append(prefixAttrs, attribute.Bool("error", false))...))
	assert.Equal(t, int64(1), sumFor(t, metrics[diotel.MetricNotFound],
		attribute.String("type", "int"), attribute.String("name", di.DefaultName)))

	hist, ok := metrics[diotel.MetricFactoryDuration].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, "ms", metrics[diotel.MetricFactoryDuration].Unit)
}

func TestObserver_NilTypeKey(t *testing.T) {
	t.Parallel()

	obs, reader := newTestObserver(t)
	obs.NotFound(di.NewKey(nil, ""))

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), sumFor(t, metrics[diotel.MetricNotFound], attribute.String("type", "<nil>")))
}
