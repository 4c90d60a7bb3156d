// Package provider is a small generic framework for swappable backends.
//
// Every backend client (speech-to-text engines, LLMs, object stores)
// implements Provider. Clients with a single call shape are exposed as
// RequestResponse[I, O] so cross-cutting behavior can be layered on with
// middleware:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("traduckxion"),
//	    provider.WithRetry[In, Out](resilience.DefaultRetryConfig()),
//	)(client)
//
// Registry holds named factories and instances and is injected where it is
// needed. ContextStore[C] is the key/value persistence interface used for
// caches; MemoryStore is the in-process implementation and redis.TypedStore
// the shared one.
package provider
