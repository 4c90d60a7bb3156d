package httpclient

import (
	"fmt"
	"time"

	"github.com/traduckxion/transcribe/resilience"
)

const defaultTimeout = 30 * time.Second

// Config configures an Adapter.
type Config struct {
	// Name identifies the adapter as a provider (e.g. "deepgram").
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// HealthPath, when set, is probed with GET by IsAvailable.
	HealthPath string `yaml:"health_path" mapstructure:"health_path"`

	// Auth is applied to every request unless the request overrides it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS customizes certificate verification. Nil uses system roots.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" {
		c.Name = "http"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.Auth != nil && c.Auth.Type == AuthCustom && c.Auth.Apply == nil {
		return fmt.Errorf("httpclient: custom auth requires an Apply function")
	}
	return c.TLS.Validate()
}

// DefaultRetryConfig returns a retry config that only retries transient HTTP failures.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}
