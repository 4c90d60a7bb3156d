package httpclient

import (
	"net/http"
	"testing"
)

func TestAuthConfig_Apply(t *testing.T) {
	tests := []struct {
		name   string
		auth   *AuthConfig
		header string
		want   string
		query  string
	}{
		{"bearer", BearerAuth("sk-1"), "Authorization", "Bearer sk-1", ""},
		{"deepgram token", SchemeAuth("Token", "dg"), "Authorization", "Token dg", ""},
		{"assemblyai raw key", APIKeyAuthHeader("aai", "Authorization"), "Authorization", "aai", ""},
		{"default key header", &AuthConfig{Type: AuthAPIKey, Key: "k"}, "X-API-Key", "k", ""},
		{"query key", APIKeyAuthQuery("q", "key"), "", "", "key=q"},
		{"custom", CustomAuth(func(r *http.Request) { r.Header.Set("X-Custom", "yes") }), "X-Custom", "yes", ""},
		{"nil", nil, "Authorization", "", ""},
		{"none", &AuthConfig{Type: AuthNone}, "Authorization", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://example.com/x", nil)
			tt.auth.apply(req)
			if tt.header != "" && req.Header.Get(tt.header) != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, req.Header.Get(tt.header), tt.want)
			}
			if tt.query != "" && req.URL.RawQuery != tt.query {
				t.Errorf("query = %q, want %q", req.URL.RawQuery, tt.query)
			}
		})
	}

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	BasicAuth("u", "p").apply(req)
	if u, p, ok := req.BasicAuth(); !ok || u != "u" || p != "p" {
		t.Errorf("basic auth = %q %q %v", u, p, ok)
	}
}
