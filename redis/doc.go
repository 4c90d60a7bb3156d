// Package redis provides a go-redis client wrapper with component logging
// and a JSON TypedStore implementing provider.ContextStore.
//
// The translation cache stores augment.Translation values through it:
//
//	client, err := redis.New(redis.Config{Addr: "localhost:6379"}, log)
//	store := redis.NewTypedStore[augment.Translation](client, client.KeyPrefix())
//	translator := augment.NewTranslator(llm, augment.WithCache(store, augment.DefaultCacheTTL))
package redis
