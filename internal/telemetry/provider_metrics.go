package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const providerMeterName = "github.com/airlens/airlens/internal/telemetry"

// ProviderMetrics holds instruments for upstream provider calls and the
// record cache in front of them.
type ProviderMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	cacheHits       metric.Int64Counter
	cacheMisses     metric.Int64Counter
}

// NewProviderMetrics creates metrics for monitoring provider calls.
func NewProviderMetrics() (*ProviderMetrics, error) {
	meter := otel.Meter(providerMeterName)

	requestDuration, err := meter.Float64Histogram(
		"provider.request.duration",
		metric.WithDescription("Duration of provider requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"provider.request.total",
		metric.WithDescription("Total number of provider requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"record.cache.hit",
		metric.WithDescription("Number of record cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"record.cache.miss",
		metric.WithDescription("Number of record cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	return &ProviderMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}, nil
}

// RecordRequest records one provider request.
func (m *ProviderMetrics) RecordRequest(provider string, duration time.Duration, failed bool) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("provider.name", provider)}
	if failed {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Metrics use a detached context so request cancellation cannot drop them.
	ctx := context.TODO()
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheHit records a record cache hit for a key.
func (m *ProviderMetrics) RecordCacheHit(key string) {
	if m == nil {
		return
	}
	m.cacheHits.Add(context.TODO(), 1, metric.WithAttributes(attribute.String("cache.key", key)))
}

// RecordCacheMiss records a record cache miss for a key.
func (m *ProviderMetrics) RecordCacheMiss(key string) {
	if m == nil {
		return
	}
	m.cacheMisses.Add(context.TODO(), 1, metric.WithAttributes(attribute.String("cache.key", key)))
}
