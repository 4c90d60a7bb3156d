package observability

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "GET", "/api/v1/engines", 200, 100*time.Millisecond)
	metrics.RecordTranscription(ctx, "deepgram", "general", "ok", false, time.Second)
	metrics.RecordProviderCall(ctx, "deepgram", "ok", time.Second)
	metrics.RecordCorrections(ctx, "medical", 2)
	metrics.RecordError(ctx, "validation", "handler")
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	metrics.RecordTranscription(ctx, "Whisper V3", "medical", "ok", false, time.Second)
	metrics.RecordTranscription(ctx, "Whisper V3", "medical", "ok", true, time.Second)
	metrics.RecordCorrections(ctx, "medical", 3)
	metrics.RecordCorrections(ctx, "medical", 0)

	if got := collectSum(t, reader, "transcription.total"); got != 2 {
		t.Errorf("transcription.total = %d, want 2", got)
	}
	if got := collectSum(t, reader, "transcription.correction.total"); got != 3 {
		t.Errorf("transcription.correction.total = %d, want 3", got)
	}
}

func TestInitMeter_ServesPrometheus(t *testing.T) {
	mp, err := InitMeter(context.Background(), DefaultMeterConfig("test"))
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	metrics.RecordProviderCall(context.Background(), "assemblyai", "ok", time.Second)

	srv := httptest.NewServer(mp.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{"go_goroutines", "provider_call", `provider="assemblyai"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServiceHealth_AddComponent(t *testing.T) {
	tests := []struct {
		name     string
		statuses []HealthStatus
		want     HealthStatus
	}{
		{"all up", []HealthStatus{HealthStatusUp, HealthStatusUp}, HealthStatusUp},
		{"degraded", []HealthStatus{HealthStatusUp, HealthStatusDegraded}, HealthStatusDegraded},
		{"down", []HealthStatus{HealthStatusDown, HealthStatusUp}, HealthStatusDown},
		{"degraded does not override down", []HealthStatus{HealthStatusDown, HealthStatusDegraded}, HealthStatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := NewServiceHealth("svc", "1.0.0")
			for i, s := range tt.statuses {
				sh.AddComponent(Health{Name: fmt.Sprintf("c%d", i), Status: s})
			}
			if sh.Status != tt.want {
				t.Errorf("status = %s, want %s", sh.Status, tt.want)
			}
			if len(sh.Components) != len(tt.statuses) {
				t.Errorf("components = %d, want %d", len(sh.Components), len(tt.statuses))
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	up := func(context.Context) bool { return true }
	down := func(context.Context) bool { return false }

	if h := CheckAvailability(context.Background(), "redis", false, time.Second, up); h.Status != HealthStatusUp {
		t.Errorf("expected up, got %s", h.Status)
	}
	if h := CheckAvailability(context.Background(), "redis", false, time.Second, down); h.Status != HealthStatusDown {
		t.Errorf("expected down, got %s", h.Status)
	}
	h := CheckAvailability(context.Background(), "deepgram", true, time.Second, down)
	if h.Status != HealthStatusDegraded {
		t.Errorf("expected degraded for optional component, got %s", h.Status)
	}
	if h.Message != "unavailable" {
		t.Errorf("unexpected message %q", h.Message)
	}
}

func TestCheckAvailability_Timeout(t *testing.T) {
	slow := func(ctx context.Context) bool {
		<-ctx.Done()
		return false
	}
	h := CheckAvailability(context.Background(), "whisper", false, 10*time.Millisecond, slow)
	if h.Status != HealthStatusDown {
		t.Errorf("expected down after timeout, got %s", h.Status)
	}
}

func TestSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), SpanTranscribe)
	SetSpanAttribute(ctx, AttrEngine, "deepgram")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, AttrSimulated, true)
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, fmt.Errorf("provider down"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanTranscribe {
		t.Errorf("span name = %q", spans[0].Name)
	}
	if len(spans[0].Attributes) != 3 {
		t.Errorf("expected 3 attributes, got %d", len(spans[0].Attributes))
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected 1 error event, got %d", len(spans[0].Events))
	}
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), fmt.Errorf("no span"))
}
