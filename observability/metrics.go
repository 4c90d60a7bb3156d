package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's metric instruments.
type Metrics struct {
	requestTotal          metric.Int64Counter
	requestDuration       metric.Float64Histogram
	requestActive         metric.Int64UpDownCounter
	transcriptionTotal    metric.Int64Counter
	transcriptionDuration metric.Float64Histogram
	providerCallTotal     metric.Int64Counter
	providerCallDuration  metric.Float64Histogram
	correctionTotal       metric.Int64Counter
	errorTotal            metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	if m.requestTotal, err = meter.Int64Counter("http.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, fmt.Errorf("creating http.request.total counter: %w", err)
	}
	if m.requestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating http.request.duration histogram: %w", err)
	}
	if m.requestActive, err = meter.Int64UpDownCounter("http.request.active",
		metric.WithDescription("Number of in-flight HTTP requests"),
	); err != nil {
		return nil, fmt.Errorf("creating http.request.active counter: %w", err)
	}
	if m.transcriptionTotal, err = meter.Int64Counter("transcription.total",
		metric.WithDescription("Transcriptions by engine, sector and outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.total counter: %w", err)
	}
	if m.transcriptionDuration, err = meter.Float64Histogram("transcription.duration",
		metric.WithDescription("End-to-end transcription time in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.duration histogram: %w", err)
	}
	if m.providerCallTotal, err = meter.Int64Counter("provider.call.total",
		metric.WithDescription("Provider calls by provider and status"),
	); err != nil {
		return nil, fmt.Errorf("creating provider.call.total counter: %w", err)
	}
	if m.providerCallDuration, err = meter.Float64Histogram("provider.call.duration",
		metric.WithDescription("Provider call duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating provider.call.duration histogram: %w", err)
	}
	if m.correctionTotal, err = meter.Int64Counter("transcription.correction.total",
		metric.WithDescription("Sector glossary substitutions"),
	); err != nil {
		return nil, fmt.Errorf("creating transcription.correction.total counter: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("error.total",
		metric.WithDescription("Errors by type and component"),
	); err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &m, nil
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the completed request.
func (m *Metrics) RecordRequestEnd(ctx context.Context, method, route string, status int, duration time.Duration) {
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

// RecordTranscription records one dispatcher run.
func (m *Metrics) RecordTranscription(ctx context.Context, engine, sector, status string, simulated bool, duration time.Duration) {
	m.transcriptionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.String("sector", sector),
		attribute.String("status", status),
		attribute.Bool("simulated", simulated),
	))
	m.transcriptionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("engine", engine),
	))
}

// RecordProviderCall records one provider round trip.
func (m *Metrics) RecordProviderCall(ctx context.Context, provider, status string, duration time.Duration) {
	m.providerCallTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.providerCallDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// RecordCorrections adds n glossary substitutions for a sector.
func (m *Metrics) RecordCorrections(ctx context.Context, sector string, n int) {
	if n == 0 {
		return
	}
	m.correctionTotal.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("sector", sector),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
