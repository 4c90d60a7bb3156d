// Package augment implements the optional transcript post-steps: summaries
// and sector-aware translations, both produced by a chat-completion model
// through the llm package. Translations are cached in a
// provider.ContextStore (in-memory or Redis).
package augment
