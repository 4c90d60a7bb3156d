// Package errors provides the structured error type shared by the engine
// selector, the dispatcher and the provider clients. Every failure carries a
// machine-readable code, an HTTP status hint and retryable detection so the
// HTTP layer and the resilience helpers can act on it without string matching.
package errors
