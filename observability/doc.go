// Package observability wires OpenTelemetry tracing and metrics for the
// transcription service.
//
// Metrics are exported through a Prometheus registry served at /metrics and
// optionally pushed over OTLP. Traces go to an OTLP/HTTP collector.
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("traduckxion"))
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter("traduckxion"))
//	router.GET("/metrics", gin.WrapH(mp.Handler()))
//
// Health:
//
//	health := observability.NewServiceHealth("traduckxion", version)
//	health.AddComponent(observability.CheckAvailability(ctx, "deepgram", true, time.Second, client.IsAvailable))
package observability
