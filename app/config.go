package app

import (
	"fmt"
	"os"
	"time"

	"github.com/traduckxion/transcribe/config"
	"github.com/traduckxion/transcribe/diarization/pyannote"
	"github.com/traduckxion/transcribe/llm"
	"github.com/traduckxion/transcribe/observability"
	"github.com/traduckxion/transcribe/redis"
	"github.com/traduckxion/transcribe/resilience"
	"github.com/traduckxion/transcribe/server"
	"github.com/traduckxion/transcribe/storage"
	"github.com/traduckxion/transcribe/transcription"
	"github.com/traduckxion/transcribe/transcription/assemblyai"
	"github.com/traduckxion/transcribe/transcription/deepgram"
	"github.com/traduckxion/transcribe/transcription/openai"
	"github.com/traduckxion/transcribe/transcription/whisper"
	"github.com/traduckxion/transcribe/util"
)

// ServiceName is the default service name and environment prefix.
const ServiceName = "traduckxion"

// Cache drivers for the translation cache.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the complete application configuration.
type Config struct {
	config.ServiceConfig `mapstructure:",squash"`

	Server        server.Config       `mapstructure:"server"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Providers     ProvidersConfig     `mapstructure:"providers"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Storage       storage.Config      `mapstructure:"storage"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// TranscriptionConfig tunes the dispatcher.
type TranscriptionConfig struct {
	// Fallback is "none" or "simulate".
	Fallback  string                        `mapstructure:"fallback"`
	Normalize transcription.NormalizeConfig `mapstructure:"normalize"`
	// CorrectionThreshold is the strict similarity bound for glossary substitutions.
	CorrectionThreshold float64 `mapstructure:"correction_threshold"`
	// Engines replaces the built-in engine table when non-empty.
	Engines []transcription.Engine `mapstructure:"engines"`
	// Dictionaries are merged over the built-in glossaries.
	Dictionaries transcription.SectorDictionary `mapstructure:"dictionaries"`
	// Retry re-runs retryable provider failures. MaxAttempts <= 1 disables it.
	Retry resilience.RetryConfig `mapstructure:"retry"`
}

// ProvidersConfig holds the speech-to-text client settings. A client is
// registered only when it is configured.
type ProvidersConfig struct {
	OpenAI     openai.Config     `mapstructure:"openai"`
	Deepgram   deepgram.Config   `mapstructure:"deepgram"`
	AssemblyAI assemblyai.Config `mapstructure:"assemblyai"`
	Whisper    WhisperConfig     `mapstructure:"whisper"`
	Pyannote   PyannoteConfig    `mapstructure:"pyannote"`
}

// PyannoteConfig enables the diarization sidecar.
type PyannoteConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	pyannote.Config `mapstructure:",squash"`
}

// WhisperConfig enables the self-hosted whisper sidecar.
type WhisperConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	whisper.Config `mapstructure:",squash"`
}

// LLMConfig configures the summary and translation model. An empty dialect
// disables both post-steps.
type LLMConfig struct {
	llm.Config `mapstructure:",squash"`
}

// Enabled reports whether an LLM is configured.
func (c LLMConfig) Enabled() bool { return c.Dialect != "" }

// CacheConfig selects the translation cache.
type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  redis.Config  `mapstructure:"redis"`
}

// ObservabilityConfig enables metrics and tracing.
type ObservabilityConfig struct {
	Metrics bool                       `mapstructure:"metrics"`
	Tracing bool                       `mapstructure:"tracing"`
	Meter   observability.MeterConfig  `mapstructure:"meter"`
	Tracer  observability.TracerConfig `mapstructure:"tracer"`
}

// Load reads config.yml, .env and TRADUCKXION_* variables into a Config.
// An explicit path overrides the config file search.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero values and reads the conventional provider
// API key variables when the config leaves them empty.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()

	if c.Transcription.Fallback == "" {
		c.Transcription.Fallback = string(transcription.FallbackNone)
	}
	if c.Transcription.CorrectionThreshold <= 0 {
		c.Transcription.CorrectionThreshold = transcription.DefaultCorrectionThreshold
	}

	c.Providers.OpenAI.APIKey = util.Coalesce(c.Providers.OpenAI.APIKey, os.Getenv("OPENAI_API_KEY"))
	c.Providers.Deepgram.APIKey = util.Coalesce(c.Providers.Deepgram.APIKey, os.Getenv("DEEPGRAM_API_KEY"))
	c.Providers.AssemblyAI.APIKey = util.Coalesce(c.Providers.AssemblyAI.APIKey, os.Getenv("ASSEMBLYAI_API_KEY"))
	if c.LLM.Dialect == "openai" {
		c.LLM.APIKey = util.Coalesce(c.LLM.APIKey, c.Providers.OpenAI.APIKey)
		c.LLM.BaseURL = util.Coalesce(c.LLM.BaseURL, "https://api.openai.com/v1")
		c.LLM.Model = util.Coalesce(c.LLM.Model, "gpt-4o-mini")
	}

	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheMemory
	}
	if c.Cache.Driver == CacheRedis {
		c.Cache.Redis.ApplyDefaults()
	}

	if c.Observability.Meter.ServiceName == "" {
		c.Observability.Meter = observability.DefaultMeterConfig(c.Name)
		c.Observability.Meter.Environment = c.Environment
	}
	if c.Observability.Tracer.ServiceName == "" {
		c.Observability.Tracer = observability.DefaultTracerConfig(c.Name)
		c.Observability.Tracer.Environment = c.Environment
	}
}

// Validate rejects inconsistent settings.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if _, ok := transcription.ParseFallbackPolicy(c.Transcription.Fallback); !ok {
		return fmt.Errorf("transcription.fallback must be none or simulate (got: %s)", c.Transcription.Fallback)
	}
	if t := c.Transcription.CorrectionThreshold; t <= 0 || t >= 1 {
		return fmt.Errorf("transcription.correction_threshold must be in (0, 1) (got: %v)", t)
	}
	if c.Storage.Enabled {
		if err := c.Storage.Validate(); err != nil {
			return err
		}
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if err := c.Cache.Redis.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cache.driver must be none, memory or redis (got: %s)", c.Cache.Driver)
	}
	if c.LLM.Enabled() {
		if _, err := llm.GetDialect(c.LLM.Dialect); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("llm.base_url is required for dialect %s", c.LLM.Dialect)
		}
	}
	return nil
}

// Catalog builds the engine catalog: the configured engines or the built-in
// table, with configured dictionaries merged over the built-in ones.
func (c *Config) Catalog() (*transcription.Catalog, error) {
	engines := c.Transcription.Engines
	if len(engines) == 0 {
		engines = transcription.DefaultEngines()
	}
	catalog, err := transcription.NewCatalog(engines, transcription.DefaultDictionaries().Merge(c.Transcription.Dictionaries))
	if err != nil {
		return nil, fmt.Errorf("engine catalog: %w", err)
	}
	return catalog, nil
}
