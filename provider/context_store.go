package provider

import (
	"context"
	"time"
)

// ContextStore persists typed values under opaque string keys. The
// translation cache uses it with either MemoryStore or redis.TypedStore.
// A TTL of 0 means no expiration.
type ContextStore[C any] interface {
	// Load returns (nil, nil) when the key is missing or expired.
	Load(ctx context.Context, key string) (*C, error)
	Save(ctx context.Context, key string, val *C, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
