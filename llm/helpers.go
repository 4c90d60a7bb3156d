package llm

import (
	"context"
	"strings"

	"github.com/traduckxion/transcribe/provider"
)

// Complete sends system + user prompts and returns the trimmed text
// response. It accepts any RequestResponse so middleware-wrapped adapters
// work too.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string, opts ...CompleteOption) (string, error) {
	req := CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: "user", Content: user}},
	}
	for _, opt := range opts {
		opt(&req)
	}
	resp, err := p.Execute(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// CompleteOption adjusts a request built by Complete.
type CompleteOption func(*CompletionRequest)

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) CompleteOption {
	return func(r *CompletionRequest) { r.Temperature = t }
}

// WithMaxTokens overrides the response length limit.
func WithMaxTokens(n int) CompleteOption {
	return func(r *CompletionRequest) { r.MaxTokens = n }
}
