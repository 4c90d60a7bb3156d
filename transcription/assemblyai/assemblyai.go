// Package assemblyai is a transcription.AsyncClient for the AssemblyAI v2
// API: upload, submit a transcript job, then poll until it settles.
package assemblyai

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/httpclient"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/resilience"
	"github.com/traduckxion/transcribe/transcription"
)

const (
	// ProviderName is the registered name for the AssemblyAI client.
	ProviderName = transcription.ProviderAssemblyAI

	defaultBaseURL = "https://api.assemblyai.com"
	defaultTimeout = 2 * time.Minute
	maxWordBoost   = 1000
)

// Job states reported by GET /v2/transcript/{id}.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Config holds the AssemblyAI client settings.
type Config struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Poll bounds the wait for a submitted job.
	Poll resilience.PollConfig `mapstructure:"poll"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	d := resilience.DefaultPollConfig()
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = d.Interval
	}
	if c.Poll.MaxAttempts <= 0 {
		c.Poll.MaxAttempts = d.MaxAttempts
	}
	if c.Poll.Timeout <= 0 {
		c.Poll.Timeout = d.Timeout
	}
}

// Client calls AssemblyAI over the shared HTTP adapter.
type Client struct {
	cfg  Config
	http *httpclient.Adapter
	log  *logger.Logger
}

var _ transcription.AsyncClient = (*Client)(nil)

// New creates an AssemblyAI client.
func New(cfg Config, opts ...httpclient.Option) (*Client, error) {
	cfg.ApplyDefaults()
	if cfg.APIKey == "" {
		return nil, errors.MissingField("providers.assemblyai.api_key")
	}
	adapter, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, "Authorization"),
		Retry:   httpclient.DefaultRetryConfig(),
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: adapter, log: logger.Get(ProviderName)}, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (c *Client) IsAvailable(context.Context) bool { return c.cfg.APIKey != "" }

// Transcribe uploads the audio, submits a job and waits for it.
func (c *Client) Transcribe(ctx context.Context, audio transcription.Audio, req transcription.Request) (*transcription.RawTranscript, error) {
	jobID, err := c.Submit(ctx, audio, req)
	if err != nil {
		return nil, err
	}
	return c.Await(ctx, jobID)
}

// Submit uploads the audio and creates a transcript job.
func (c *Client) Submit(ctx context.Context, audio transcription.Audio, req transcription.Request) (string, error) {
	if len(audio.Data) == 0 {
		return "", errors.InvalidInput("file", "audio is empty")
	}

	upload, err := httpclient.Post[uploadResponse](ctx, c.http, "/v2/upload", audio.Data)
	if err != nil {
		return "", httpclient.ToAppError(ProviderName, err)
	}
	if upload.Data.UploadURL == "" {
		return "", errors.ProviderFailure(ProviderName, stderrors.New("upload returned no url"))
	}

	body := transcriptRequest{
		AudioURL:      upload.Data.UploadURL,
		LanguageCode:  req.Language,
		SpeakerLabels: req.Features.Diarization,
		Punctuate:     req.Features.Punctuation,
		FormatText:    req.Features.Punctuation,
		AutoChapters:  req.Features.Summary,
	}
	if n := min(len(req.Vocabulary), maxWordBoost); n > 0 {
		body.WordBoost = req.Vocabulary[:n]
		body.BoostParam = "high"
	}

	job, err := httpclient.Post[transcriptResponse](ctx, c.http, "/v2/transcript", body)
	if err != nil {
		return "", httpclient.ToAppError(ProviderName, err)
	}
	if job.Data.ID == "" {
		return "", errors.ProviderFailure(ProviderName, stderrors.New("transcript job has no id"))
	}
	c.log.WithContext(ctx).Debug("transcript job submitted", logger.Fields(logger.FieldJobID, job.Data.ID))
	return job.Data.ID, nil
}

// Await polls the job until it completes, fails, or the poll budget runs
// out. Caller cancellation is returned as is.
func (c *Client) Await(ctx context.Context, jobID string) (*transcription.RawTranscript, error) {
	job, attempts, err := resilience.Poll(ctx, c.cfg.Poll, func(ctx context.Context) (*transcriptResponse, bool, error) {
		resp, err := httpclient.Get[transcriptResponse](ctx, c.http, "/v2/transcript/"+jobID)
		if err != nil {
			return nil, false, err
		}
		switch resp.Data.Status {
		case StatusCompleted:
			return &resp.Data, true, nil
		case StatusError:
			return nil, false, errors.JobFailed(ProviderName, jobID, resp.Data.Error)
		}
		return nil, false, nil
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrPollExhausted) {
			return nil, errors.PollTimeout(ProviderName, jobID, attempts).WithCause(err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httpclient.ToAppError(ProviderName, err)
	}

	c.log.WithContext(ctx).Debug("transcript job completed", logger.Fields(
		logger.FieldJobID, jobID,
		"attempts", attempts,
	))
	return toRawTranscript(job), nil
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.http.Close(ctx)
}

// --- AssemblyAI API types ---

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL      string   `json:"audio_url"`
	LanguageCode  string   `json:"language_code,omitempty"`
	SpeakerLabels bool     `json:"speaker_labels"`
	Punctuate     bool     `json:"punctuate"`
	FormatText    bool     `json:"format_text"`
	AutoChapters  bool     `json:"auto_chapters"`
	WordBoost     []string `json:"word_boost,omitempty"`
	BoostParam    string   `json:"boost_param,omitempty"`
}

type transcriptResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Error        string    `json:"error"`
	Text         string    `json:"text"`
	LanguageCode string    `json:"language_code"`
	AudioSeconds float64   `json:"audio_duration"`
	Words        []word    `json:"words"`
	Chapters     []chapter `json:"chapters"`
	Summary      string    `json:"summary"`
}

type word struct {
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker"`
}

type chapter struct {
	Summary string `json:"summary"`
}

func toRawTranscript(job *transcriptResponse) *transcription.RawTranscript {
	raw := &transcription.RawTranscript{
		Text:     job.Text,
		Language: job.LanguageCode,
		Duration: job.AudioSeconds,
		Summary:  job.Summary,
		Words:    make([]transcription.Word, len(job.Words)),
	}
	for i, w := range job.Words {
		raw.Words[i] = transcription.Word{
			Text:       w.Text,
			Start:      msToSeconds(w.Start),
			End:        msToSeconds(w.End),
			Confidence: w.Confidence,
		}
		if w.Speaker != "" {
			raw.Words[i].Speaker = fmt.Sprintf("Speaker %s", w.Speaker)
		}
	}
	if raw.Summary == "" && len(job.Chapters) > 0 {
		summaries := make([]string, 0, len(job.Chapters))
		for _, ch := range job.Chapters {
			if s := strings.TrimSpace(ch.Summary); s != "" {
				summaries = append(summaries, s)
			}
		}
		raw.Summary = strings.Join(summaries, " ")
	}
	return raw
}

func msToSeconds(ms int64) float64 {
	return float64(ms) / 1000
}
