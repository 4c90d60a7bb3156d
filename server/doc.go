// Package server provides the HTTP server for the transcription API using
// Gin, served over HTTP/1.1 and h2c on a single port.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - RequestID: request id generation and propagation into the log context
//   - Recovery: panic recovery with structured logging
//   - RequestLogger: request logging with duration tracking
//   - CORS: cross-origin resource sharing
//   - BodySizeLimit: request body size limits
//   - RateLimit: per-client sliding window on the API group
//   - Metrics: OpenTelemetry request counters and histograms
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /health, /alive, /ready, /info and
// /metrics (Prometheus).
package server
