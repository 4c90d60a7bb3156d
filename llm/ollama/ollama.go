// Package ollama provides the Ollama dialect for the llm adapter.
//
// Import this package to register the "ollama" dialect:
//
//	import _ "github.com/traduckxion/transcribe/llm/ollama"
package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/traduckxion/transcribe/llm"
)

func init() {
	llm.RegisterDialect("ollama", &Dialect{})
}

// Dialect maps llm types to/from the Ollama /api/chat format.
type Dialect struct{}

func (d *Dialect) Name() string       { return "ollama" }
func (d *Dialect) ChatPath() string   { return "/api/chat" }
func (d *Dialect) HealthPath() string { return "/api/tags" }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *options      `json:"options,omitempty"`
}

type options struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done            bool `json:"done"`
	PromptEvalCount int  `json:"prompt_eval_count"`
	EvalCount       int  `json:"eval_count"`
}

// BuildRequest maps a CompletionRequest to a non-streaming Ollama chat request.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	out := chatRequest{
		Model:    req.Model,
		Messages: req.AllMessages(),
		Stream:   false,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		out.Options = &options{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}
	return out, nil
}

// ParseResponse maps an Ollama chat response to a CompletionResponse.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	return &llm.CompletionResponse{
		Content: resp.Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
