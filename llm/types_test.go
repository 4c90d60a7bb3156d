package llm

import "testing"

func TestAllMessages(t *testing.T) {
	tests := []struct {
		name  string
		req   CompletionRequest
		roles []string
	}{
		{
			name:  "system first",
			req:   CompletionRequest{SystemPrompt: "s", Messages: []Message{{Role: "user", Content: "u"}}},
			roles: []string{"system", "user"},
		},
		{
			name:  "no system",
			req:   CompletionRequest{Messages: []Message{{Role: "user"}, {Role: "assistant"}}},
			roles: []string{"user", "assistant"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.AllMessages()
			if len(got) != len(tt.roles) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.roles))
			}
			for i, role := range tt.roles {
				if got[i].Role != role {
					t.Errorf("msg[%d].Role = %q, want %q", i, got[i].Role, role)
				}
			}
		})
	}
}
