// Package observe provides application-wide observability primitives for
// Awaaz: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Awaaz metrics.
const meterName = "github.com/awaaz-ai/awaaz"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per external service ---

	// AnalyzeDuration tracks document analysis latency.
	AnalyzeDuration metric.Float64Histogram

	// SynthesisDuration tracks text-to-speech synthesis latency.
	SynthesisDuration metric.Float64Histogram

	// MusicDuration tracks music generation latency.
	MusicDuration metric.Float64Histogram

	// --- Counters ---

	// ProviderRequests counts provider API calls. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("kind", ...), attribute.String("status", ...)
	ProviderRequests metric.Int64Counter

	// Edits counts committed text replacements.
	Edits metric.Int64Counter

	// SuggestionQueries counts suggestion lookups. Use with attribute:
	//   attribute.Bool("empty", ...)
	SuggestionQueries metric.Int64Counter

	// SettingUpdates counts committed settings changes. Use with attribute:
	//   attribute.String("field", ...)
	SettingUpdates metric.Int64Counter

	// --- Error counters ---

	// ProviderErrors counts provider errors. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("kind", ...)
	ProviderErrors metric.Int64Counter

	// --- Gauges ---

	// ActiveRequests tracks in-flight external requests by kind.
	ActiveRequests metric.Int64UpDownCounter

	// BlockedSessions tracks sessions currently gender-blocked from synthesis.
	BlockedSessions metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// external API latencies: synthesis and analysis calls run for seconds.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.AnalyzeDuration, err = m.Float64Histogram("awaaz.analyze.duration",
		metric.WithDescription("Latency of document analysis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SynthesisDuration, err = m.Float64Histogram("awaaz.synthesis.duration",
		metric.WithDescription("Latency of text-to-speech synthesis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.MusicDuration, err = m.Float64Histogram("awaaz.music.duration",
		metric.WithDescription("Latency of music generation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.ProviderRequests, err = m.Int64Counter("awaaz.provider.requests",
		metric.WithDescription("Total provider API requests by provider, kind, and status."),
	); err != nil {
		return nil, err
	}
	if met.Edits, err = m.Int64Counter("awaaz.edits",
		metric.WithDescription("Total committed text replacements."),
	); err != nil {
		return nil, err
	}
	if met.SuggestionQueries, err = m.Int64Counter("awaaz.suggestion.queries",
		metric.WithDescription("Total suggestion lookups by result emptiness."),
	); err != nil {
		return nil, err
	}
	if met.SettingUpdates, err = m.Int64Counter("awaaz.setting.updates",
		metric.WithDescription("Total committed settings changes by field."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.ProviderErrors, err = m.Int64Counter("awaaz.provider.errors",
		metric.WithDescription("Total provider errors by provider and kind."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveRequests, err = m.Int64UpDownCounter("awaaz.active_requests",
		metric.WithDescription("Number of in-flight external requests by kind."),
	); err != nil {
		return nil, err
	}
	if met.BlockedSessions, err = m.Int64UpDownCounter("awaaz.blocked_sessions",
		metric.WithDescription("Number of sessions gender-blocked from synthesis."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("awaaz.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordProviderRequest is a convenience method that records a provider
// request counter increment with the standard attribute set.
func (m *Metrics) RecordProviderRequest(ctx context.Context, provider, kind, status string) {
	m.ProviderRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("kind", kind),
			attribute.String("status", status),
		),
	)
}

// RecordProviderError is a convenience method that records a provider error
// counter increment.
func (m *Metrics) RecordProviderError(ctx context.Context, provider, kind string) {
	m.ProviderErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("kind", kind),
		),
	)
}

// RecordEdit records one committed text replacement.
func (m *Metrics) RecordEdit(ctx context.Context) {
	m.Edits.Add(ctx, 1)
}

// RecordSuggestionQuery records one suggestion lookup and whether it came
// back empty.
func (m *Metrics) RecordSuggestionQuery(ctx context.Context, empty bool) {
	m.SuggestionQueries.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("empty", empty)),
	)
}

// RecordSettingUpdate records one committed settings change.
func (m *Metrics) RecordSettingUpdate(ctx context.Context, field string) {
	m.SettingUpdates.Add(ctx, 1,
		metric.WithAttributes(attribute.String("field", field)),
	)
}
