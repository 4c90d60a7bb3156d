// Package openai provides the OpenAI-compatible chat completions dialect
// for the llm adapter. It also serves vLLM, LocalAI and other servers
// exposing /chat/completions.
//
//	import _ "github.com/traduckxion/transcribe/llm/openai"
package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/traduckxion/transcribe/llm"
)

func init() {
	llm.RegisterDialect("openai", &Dialect{})
}

// ErrNoChoices is returned when the provider answers without any choice.
var ErrNoChoices = errors.New("openai: response has no choices")

// Dialect maps llm types to/from the OpenAI chat completions format.
// BaseURL is expected to include the API version (e.g. https://api.openai.com/v1).
type Dialect struct{}

func (d *Dialect) Name() string       { return "openai" }
func (d *Dialect) ChatPath() string   { return "/chat/completions" }
func (d *Dialect) HealthPath() string { return "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage llm.Usage `json:"usage"`
}

// BuildRequest maps a CompletionRequest to a chat completions body.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	return chatRequest{
		Model:       req.Model,
		Messages:    req.AllMessages(),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}, nil
}

// ParseResponse reads the first choice of a chat completions response.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   resp.Usage,
	}, nil
}
