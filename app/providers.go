package app

import (
	"context"
	"fmt"
	"time"

	"github.com/traduckxion/transcribe/augment"
	"github.com/traduckxion/transcribe/diarization/pyannote"
	"github.com/traduckxion/transcribe/llm"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/provider"
	"github.com/traduckxion/transcribe/redis"
	"github.com/traduckxion/transcribe/transcription"
	"github.com/traduckxion/transcribe/transcription/assemblyai"
	"github.com/traduckxion/transcribe/transcription/deepgram"
	"github.com/traduckxion/transcribe/transcription/openai"
	"github.com/traduckxion/transcribe/transcription/whisper"
	"github.com/traduckxion/transcribe/util"

	// LLM dialects register themselves with llm.New.
	_ "github.com/traduckxion/transcribe/llm/ollama"
	_ "github.com/traduckxion/transcribe/llm/openai"
)

const pingTimeout = 3 * time.Second

// buildClients registers a client for every configured provider, then the
// overrides. Unconfigured providers are skipped.
func (a *App) buildClients(overrides map[string]transcription.Client) (*provider.Registry[transcription.Client], error) {
	p := a.Cfg.Providers
	reg := transcription.NewClientRegistry()

	if p.OpenAI.APIKey != "" {
		c, err := openai.New(p.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		reg.Set(transcription.ProviderOpenAI, c)
		a.logKey(transcription.ProviderOpenAI, p.OpenAI.APIKey)
	}
	if p.Deepgram.APIKey != "" {
		c, err := deepgram.New(p.Deepgram)
		if err != nil {
			return nil, fmt.Errorf("deepgram client: %w", err)
		}
		reg.Set(transcription.ProviderDeepgram, c)
		a.logKey(transcription.ProviderDeepgram, p.Deepgram.APIKey)
	}
	if p.AssemblyAI.APIKey != "" {
		c, err := assemblyai.New(p.AssemblyAI)
		if err != nil {
			return nil, fmt.Errorf("assemblyai client: %w", err)
		}
		reg.Set(transcription.ProviderAssemblyAI, c)
		a.logKey(transcription.ProviderAssemblyAI, p.AssemblyAI.APIKey)
	}
	if p.Whisper.Enabled {
		c, err := whisper.New(p.Whisper.Config)
		if err != nil {
			return nil, fmt.Errorf("whisper client: %w", err)
		}
		reg.Set(transcription.ProviderWhisper, c)
	}
	for kind, c := range overrides {
		reg.Set(kind, c)
	}

	for _, kind := range reg.Instances() {
		c, _ := reg.Get(kind)
		a.addProbe("provider:"+kind, true, c.IsAvailable)
	}
	a.addProbe("providers", false, func(context.Context) bool {
		return len(reg.Instances()) > 0
	})
	return reg, nil
}

func (a *App) logKey(kind, key string) {
	a.Logger.Debug("provider client registered", logger.Fields(
		logger.FieldProvider, kind,
		"api_key", util.MaskSecret(key, 6),
	))
}

// buildDiarizer returns the speaker labeling option when the sidecar is enabled.
func (a *App) buildDiarizer() ([]transcription.Option, error) {
	if !a.Cfg.Providers.Pyannote.Enabled {
		return nil, nil
	}
	c, err := pyannote.New(a.Cfg.Providers.Pyannote.Config)
	if err != nil {
		return nil, fmt.Errorf("pyannote client: %w", err)
	}
	a.OnStop(c.Close)
	a.addProbe("diarization:"+c.Name(), true, c.IsAvailable)
	return []transcription.Option{transcription.WithDiarizer(c)}, nil
}

// buildAugment wires the summarizer and translator over the configured
// LLM, with the translation cache.
func (a *App) buildAugment(ctx context.Context) ([]transcription.Option, error) {
	cfg := a.Cfg
	if !cfg.LLM.Enabled() {
		return nil, nil
	}

	adapter, err := llm.New(cfg.LLM.Config)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	a.OnStop(adapter.Close)
	a.addProbe("llm:"+adapter.Name(), true, adapter.IsAvailable)

	mw := []provider.Middleware[llm.CompletionRequest, llm.CompletionResponse]{
		provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](a.Logger.WithComponent("llm")),
	}
	if a.metrics != nil {
		mw = append(mw, provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](a.metrics))
	}
	completer := provider.Chain(mw...)(adapter)

	translatorOpts := []augment.TranslatorOption{
		augment.WithTranslatorLogger(a.Logger.WithComponent("translator")),
	}
	store, err := a.buildCache(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = augment.DefaultCacheTTL
		}
		translatorOpts = append(translatorOpts, augment.WithCache(store, ttl))
	}

	return []transcription.Option{
		transcription.WithSummarizer(augment.NewSummarizer(completer)),
		transcription.WithTranslator(augment.NewTranslator(completer, translatorOpts...)),
	}, nil
}

// buildCache returns the translation cache for the configured driver. An
// unreachable Redis is logged; the translator treats cache errors as misses.
func (a *App) buildCache(ctx context.Context) (provider.ContextStore[augment.Translation], error) {
	switch a.Cfg.Cache.Driver {
	case CacheMemory:
		return provider.NewMemoryStore[augment.Translation](), nil
	case CacheRedis:
		client, err := redis.New(a.Cfg.Cache.Redis, a.Logger.WithComponent("redis"))
		if err != nil {
			return nil, err
		}
		a.OnStop(func(context.Context) error { return client.Close() })
		a.addProbe("cache:redis", true, client.IsAvailable)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			a.Logger.Warn("translation cache unreachable", logger.ErrorFields("redis.ping", err))
		}
		return redis.NewTypedStore[augment.Translation](client, client.KeyPrefix()), nil
	default:
		return nil, nil
	}
}
