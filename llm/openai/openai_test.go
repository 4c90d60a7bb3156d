package openai

import (
	"errors"
	"testing"

	"github.com/traduckxion/transcribe/llm"
)

func TestRegistered(t *testing.T) {
	d, err := llm.GetDialect("openai")
	if err != nil {
		t.Fatalf("GetDialect: %v", err)
	}
	if d.ChatPath() != "/chat/completions" {
		t.Errorf("ChatPath() = %q", d.ChatPath())
	}
}

func TestBuildRequest(t *testing.T) {
	body, err := (&Dialect{}).BuildRequest(llm.CompletionRequest{
		Model:        "gpt-4o-mini",
		SystemPrompt: "sys",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}},
		MaxTokens:    50,
	})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	req := body.(chatRequest)
	if req.Model != "gpt-4o-mini" || req.MaxTokens != 50 {
		t.Errorf("req = %+v", req)
	}
	if len(req.Messages) != 2 || req.Messages[0].Content != "sys" {
		t.Errorf("messages = %+v", req.Messages)
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "first choice",
			body: `{"model":"gpt-4o-mini","choices":[{"message":{"role":"assistant","content":"résumé"}},{"message":{"content":"other"}}],"usage":{"prompt_tokens":3,"completion_tokens":4,"total_tokens":7}}`,
			want: "résumé",
		},
		{name: "no choices", body: `{"choices":[]}`, wantErr: ErrNoChoices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := (&Dialect{}).ParseResponse([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse: %v", err)
			}
			if resp.Content != tt.want || resp.Usage.TotalTokens != 7 {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}
