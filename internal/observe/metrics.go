// Package observe provides observability primitives for voicelist:
// OpenTelemetry metrics, tracing, trace-aware structured logging, and a
// Prometheus text dump of the collected metrics.
//
// Tests should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution; [DefaultMetrics] uses the global provider.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all voicelist metrics.
const meterName = "github.com/MrWong99/voicelist"

// Metrics holds the metric instruments recorded during a listing pass.
type Metrics struct {
	// VoicesEnumerated counts voice handles returned by the source.
	VoicesEnumerated metric.Int64Counter

	// VoicesDetailed counts voices printed with the detailed block.
	VoicesDetailed metric.Int64Counter

	// VoicesAbbreviated counts voices printed with the abbreviated block. Use
	// with attribute.String("desirability", "absent"|"unparsed"|"parsed").
	VoicesAbbreviated metric.Int64Counter

	// SourceErrors counts failed source calls. Use with
	// attribute.String("op", ...).
	SourceErrors metric.Int64Counter

	// ListDuration tracks the wall time of a full listing pass.
	ListDuration metric.Float64Histogram
}

// durationBuckets are histogram boundaries in seconds. A pass over the
// system database usually completes well under a second.
var durationBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.VoicesEnumerated, err = m.Int64Counter("voicelist.voices.enumerated",
		metric.WithDescription("Voices returned by the voice source."),
	); err != nil {
		return nil, err
	}
	if met.VoicesDetailed, err = m.Int64Counter("voicelist.voices.detailed",
		metric.WithDescription("Voices at or above the desirability threshold."),
	); err != nil {
		return nil, err
	}
	if met.VoicesAbbreviated, err = m.Int64Counter("voicelist.voices.abbreviated",
		metric.WithDescription("Voices below the threshold or without a usable score, by desirability state."),
	); err != nil {
		return nil, err
	}
	if met.SourceErrors, err = m.Int64Counter("voicelist.source.errors",
		metric.WithDescription("Failed voice source calls by operation."),
	); err != nil {
		return nil, err
	}
	if met.ListDuration, err = m.Float64Histogram("voicelist.list.duration",
		metric.WithDescription("Duration of a full listing pass."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails.
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

// RecordAbbreviated records one abbreviated voice with its desirability state.
func (m *Metrics) RecordAbbreviated(ctx context.Context, state string) {
	m.VoicesAbbreviated.Add(ctx, 1,
		metric.WithAttributes(attribute.String("desirability", state)),
	)
}

// RecordSourceError records one failed source call.
func (m *Metrics) RecordSourceError(ctx context.Context, op string) {
	m.SourceErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("op", op)),
	)
}
