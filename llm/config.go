package llm

import (
	"time"

	"github.com/traduckxion/transcribe/httpclient"
	"github.com/traduckxion/transcribe/resilience"
)

// Config holds configuration for creating an LLM adapter.
// It is provider-agnostic: the Dialect field selects the provider mapping.
type Config struct {
	// Name identifies this adapter instance (e.g., "summary-llm").
	Name string `yaml:"name" mapstructure:"name"`

	// Dialect selects the provider mapping ("openai" or "ollama").
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	// BaseURL is the provider's API base URL (e.g., "http://localhost:11434").
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIKey is sent as a bearer token when set.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Model is the default model to use (e.g., "gpt-4o-mini", "qwen2.5:1.5b").
	Model string `yaml:"model" mapstructure:"model"`

	// Temperature is the default sampling temperature (0.0-1.0).
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens is the default maximum tokens for responses. 0 means provider default.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout for HTTP requests. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior for failed requests. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
}

// applyDefaults sets default values for unset config fields.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Name == "" && c.Dialect != "" {
		c.Name = c.Dialect + "-llm"
	}
}

func (c *Config) auth() *httpclient.AuthConfig {
	if c.APIKey == "" {
		return nil
	}
	return httpclient.BearerAuth(c.APIKey)
}
