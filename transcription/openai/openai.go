// Package openai is a transcription.Client for the OpenAI audio
// transcription endpoint and compatible servers.
package openai

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/transcription"
)

const (
	// ProviderName is the registered name for the OpenAI client.
	ProviderName = transcription.ProviderOpenAI

	defaultTimeout = 5 * time.Minute
	maxPromptTerms = 50
)

// Config holds the OpenAI client settings.
type Config struct {
	APIKey string `mapstructure:"api_key"`
	// BaseURL points at an OpenAI-compatible server, including the /v1 suffix.
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = goopenai.Whisper1
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Client wraps the go-openai client.
type Client struct {
	cfg    Config
	client *goopenai.Client
}

var _ transcription.Client = (*Client)(nil)

// New creates an OpenAI client.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if cfg.APIKey == "" {
		return nil, errors.MissingField("providers.openai.api_key")
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{cfg: cfg, client: goopenai.NewClientWithConfig(oc)}, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (c *Client) IsAvailable(context.Context) bool { return c.cfg.APIKey != "" }

// Transcribe sends the audio as a verbose_json transcription request with
// word and segment timestamps.
func (c *Client) Transcribe(ctx context.Context, audio transcription.Audio, req transcription.Request) (*transcription.RawTranscript, error) {
	if len(audio.Data) == 0 {
		return nil, errors.InvalidInput("file", "audio is empty")
	}

	model := c.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	fileName := audio.FileName
	if fileName == "" {
		fileName = "audio.wav"
	}

	resp, err := c.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    model,
		FilePath: fileName,
		Reader:   bytes.NewReader(audio.Data),
		Language: req.Language,
		Prompt:   vocabularyPrompt(req.Vocabulary),
		Format:   goopenai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []goopenai.TranscriptionTimestampGranularity{
			goopenai.TranscriptionTimestampGranularityWord,
			goopenai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		return nil, toAppError(ctx, err)
	}
	return toRawTranscript(&resp, req.Language), nil
}

// vocabularyPrompt lists glossary terms so the model spells them as given.
func vocabularyPrompt(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	return strings.Join(terms[:min(len(terms), maxPromptTerms)], ", ")
}

func toRawTranscript(resp *goopenai.AudioResponse, language string) *transcription.RawTranscript {
	raw := &transcription.RawTranscript{
		Text:     strings.TrimSpace(resp.Text),
		Language: language,
		Duration: resp.Duration,
	}
	if resp.Language != "" && language == "" {
		raw.Language = resp.Language
	}

	raw.Segments = make([]transcription.Segment, len(resp.Segments))
	for i, s := range resp.Segments {
		raw.Segments[i] = transcription.Segment{
			ID:         fmt.Sprint(s.ID + 1),
			Start:      s.Start,
			End:        s.End,
			Text:       strings.TrimSpace(s.Text),
			Confidence: transcription.ScoreSegment(s.AvgLogprob, s.NoSpeechProb),
		}
	}
	raw.Words = make([]transcription.Word, len(resp.Words))
	for i, w := range resp.Words {
		raw.Words[i] = transcription.Word{Text: w.Word, Start: w.Start, End: w.End}
	}
	return raw
}

func toAppError(ctx context.Context, err error) error {
	if stderrors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if ctx.Err() != nil {
		return errors.Timeout(ProviderName).WithCause(err)
	}

	status := 0
	var apiErr *goopenai.APIError
	var reqErr *goopenai.RequestError
	switch {
	case stderrors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case stderrors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.Unauthorized("The openai provider rejected the credentials.").
			WithCause(err).WithDetail("provider", ProviderName)
	case status == http.StatusTooManyRequests:
		return errors.RateLimited().WithCause(err).WithDetail("provider", ProviderName)
	}

	appErr := errors.ProviderFailure(ProviderName, err)
	if status > 0 {
		appErr.WithDetail("status", status)
		appErr.Retryable = status >= 500
	}
	return appErr
}
