// Package llm provides a config-driven chat-completion client built on the
// shared HTTP adapter. It backs transcript summaries and translations.
//
// The adapter works with any provider via the Dialect pattern, similar to
// how database/sql works with driver packages. Two dialects ship with the
// module: llm/openai (OpenAI-compatible /chat/completions) and llm/ollama
// (/api/chat).
//
// # Usage
//
//	import (
//	    "github.com/traduckxion/transcribe/llm"
//	    _ "github.com/traduckxion/transcribe/llm/ollama"
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect: "ollama",
//	    BaseURL: "http://localhost:11434",
//	    Model:   "qwen2.5:1.5b",
//	})
//
//	text, err := llm.Complete(ctx, adapter, "You are a summarizer.", transcript)
package llm
