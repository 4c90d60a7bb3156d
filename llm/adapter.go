package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/httpclient"
)

// ErrNoDialect is returned when an adapter is created without a dialect.
var ErrNoDialect = errors.New("llm: dialect is required")

// Adapter is a config-driven LLM client that works with any provider via
// the Dialect pattern. The HTTP adapter handles auth, timeouts and retry;
// the dialect handles the provider's request and response shapes.
//
// Adapter implements provider.RequestResponse[CompletionRequest, CompletionResponse].
type Adapter struct {
	http      *httpclient.Adapter
	dialect   Dialect
	model     string
	temp      float64
	maxTokens int
}

// New creates an LLM adapter from config using the global dialect registry.
// The config's Dialect field must match a registered dialect name.
func New(cfg Config) (*Adapter, error) {
	cfg.applyDefaults()

	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	return newAdapter(dialect, cfg)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	cfg.applyDefaults()
	if cfg.Name == "" {
		cfg.Name = dialect.Name() + "-llm"
	}
	return newAdapter(dialect, cfg)
}

func newAdapter(dialect Dialect, cfg Config) (*Adapter, error) {
	client, err := httpclient.New(httpclient.Config{
		Name:       cfg.Name,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		HealthPath: dialect.HealthPath(),
		Auth:       cfg.auth(),
		Headers:    cfg.Headers,
		Retry:      cfg.Retry,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	return &Adapter{
		http:      client,
		dialect:   dialect,
		model:     cfg.Model,
		temp:      cfg.Temperature,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.http.Name() }

// IsAvailable probes the dialect's health endpoint. Without one the
// provider is assumed reachable.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	return a.http.IsAvailable(ctx)
}

// Close releases resources.
func (a *Adapter) Close(ctx context.Context) error { return a.http.Close(ctx) }

// Execute sends a completion request and returns the full response.
// Transport failures are returned as EXTERNAL_SERVICE_ERROR AppErrors.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.applyDefaults(&req)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	resp, err := httpclient.Post[json.RawMessage](ctx, a.http, a.dialect.ChatPath(), body)
	if err != nil {
		appErr := apperrors.ExternalServiceError(a.Name(), err)
		appErr.Retryable = httpclient.IsRetryable(err)
		return CompletionResponse{}, appErr
	}

	result, err := a.dialect.ParseResponse(resp.Data)
	if err != nil {
		return CompletionResponse{}, apperrors.ExternalServiceError(a.Name(), fmt.Errorf("llm: parse response: %w", err))
	}
	return *result, nil
}

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.maxTokens
	}
}
