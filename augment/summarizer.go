package augment

import (
	"context"
	"fmt"

	"github.com/traduckxion/transcribe/llm"
	"github.com/traduckxion/transcribe/provider"
)

// Completer is the chat-completion surface used by the post-steps.
// *llm.Adapter satisfies it, as does any middleware-wrapped adapter.
type Completer = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

const (
	defaultTemperature = 0.3
	maxTokensCap       = 4000
	summaryMaxTokens   = 500
)

// Summarizer produces a short summary of a transcript.
type Summarizer struct {
	llm Completer
}

// NewSummarizer creates a Summarizer backed by the given completer.
func NewSummarizer(c Completer) *Summarizer {
	return &Summarizer{llm: c}
}

// Summarize returns a summary of text written in language.
func (s *Summarizer) Summarize(ctx context.Context, text, language string) (string, error) {
	user := fmt.Sprintf("Résumez la transcription suivante en %s, en quelques phrases.\n\nTranscription:\n%s",
		languageName(language), text)
	summary, err := llm.Complete(ctx, s.llm, summarizerPrompt, user,
		llm.WithTemperature(defaultTemperature),
		llm.WithMaxTokens(summaryMaxTokens))
	if err != nil {
		return "", fmt.Errorf("augment: summarize: %w", err)
	}
	return summary, nil
}
