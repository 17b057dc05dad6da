package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bibbank/loanrisk"

// PredictionMetrics implements port.PredictionMetrics with OpenTelemetry
// instruments.
type PredictionMetrics struct {
	predictions metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewPredictionMetrics registers the prediction instruments on provider.
func NewPredictionMetrics(provider metric.MeterProvider) (*PredictionMetrics, error) {
	meter := provider.Meter(meterName)

	predictions, err := meter.Int64Counter("loanrisk.predictions",
		metric.WithDescription("Completed prediction cycles by outcome."))
	if err != nil {
		return nil, fmt.Errorf("telemetry: predictions counter: %w", err)
	}

	failures, err := meter.Int64Counter("loanrisk.prediction.failures",
		metric.WithDescription("Failed prediction cycles by reason."))
	if err != nil {
		return nil, fmt.Errorf("telemetry: failures counter: %w", err)
	}

	duration, err := meter.Float64Histogram("loanrisk.prediction.duration",
		metric.WithDescription("Duration of a prediction cycle."),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000))
	if err != nil {
		return nil, fmt.Errorf("telemetry: duration histogram: %w", err)
	}

	return &PredictionMetrics{
		predictions: predictions,
		failures:    failures,
		duration:    duration,
	}, nil
}

// RecordPrediction counts a completed cycle and records its duration.
func (m *PredictionMetrics) RecordPrediction(ctx context.Context, outcome string, d time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.predictions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
}

// RecordFailure counts a failed cycle.
func (m *PredictionMetrics) RecordFailure(ctx context.Context, reason string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
