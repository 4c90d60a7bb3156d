package transcription

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/observability"
	"github.com/traduckxion/transcribe/provider"
	"github.com/traduckxion/transcribe/validation"
)

// Placeholders set when a post-step is skipped or fails.
const (
	SummaryUnavailable     = "[summary unavailable]"
	TranslationUnavailable = "[translation unavailable]"
)

// Summarizer produces a summary of a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, text, language string) (string, error)
}

// Translator translates a transcript, using sector-specific wording.
type Translator interface {
	Translate(ctx context.Context, text, from, to string, sector Sector) (string, error)
}

// Service dispatches transcription requests to provider clients.
type Service struct {
	catalog    *Catalog
	clients    *provider.Registry[Client]
	corrector  *Corrector
	summarizer Summarizer
	translator Translator
	diarizer   Diarizer
	fallback   FallbackPolicy
	normalize  NormalizeConfig
	middleware []provider.Middleware[Call, *RawTranscript]
	log        *logger.Logger
	metrics    *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithCorrector replaces the default glossary corrector.
func WithCorrector(c *Corrector) Option {
	return func(s *Service) { s.corrector = c }
}

// WithSummarizer enables summaries.
func WithSummarizer(sum Summarizer) Option {
	return func(s *Service) { s.summarizer = sum }
}

// WithTranslator enables translations.
func WithTranslator(t Translator) Option {
	return func(s *Service) { s.translator = t }
}

// WithDiarizer labels speakers when diarization is requested and the
// provider returned none.
func WithDiarizer(d Diarizer) Option {
	return func(s *Service) { s.diarizer = d }
}

// WithFallback sets the default failure policy. Requests may override it.
func WithFallback(p FallbackPolicy) Option {
	return func(s *Service) { s.fallback = p }
}

// WithNormalizeConfig tunes segment grouping.
func WithNormalizeConfig(cfg NormalizeConfig) Option {
	return func(s *Service) { s.normalize = cfg }
}

// WithClientMiddleware wraps every provider call, outermost first.
func WithClientMiddleware(mw ...provider.Middleware[Call, *RawTranscript]) Option {
	return func(s *Service) { s.middleware = append(s.middleware, mw...) }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics records transcription and correction metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service over an engine catalog and a registry of
// clients keyed by provider kind.
func NewService(catalog *Catalog, clients *provider.Registry[Client], opts ...Option) *Service {
	s := &Service{
		catalog:   catalog,
		clients:   clients,
		fallback:  FallbackNone,
		normalize: DefaultNormalizeConfig(),
		log:       logger.Get("transcription"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.corrector == nil {
		s.corrector = NewCorrector(catalog.SectorDictionaries(), DefaultCorrectionThreshold)
	}
	return s
}

// Catalog returns the engine catalog.
func (s *Service) Catalog() *Catalog { return s.catalog }

// Corrector returns the glossary corrector.
func (s *Service) Corrector() *Corrector { return s.corrector }

// Engines returns the registered engines.
func (s *Service) Engines() []Engine { return s.catalog.Engines() }

// SectorDictionaries returns a copy of the glossaries.
func (s *Service) SectorDictionaries() SectorDictionary { return s.catalog.SectorDictionaries() }

// SelectBestEngine picks the engine for a language and sector.
func (s *Service) SelectBestEngine(language string, sector Sector) (Engine, error) {
	return s.catalog.SelectBestEngine(language, sector)
}

// ResolveEngine returns the explicitly requested engine or the best match.
func (s *Service) ResolveEngine(opts Options) (Engine, error) {
	if opts.Engine != "" {
		e, ok := s.catalog.Engine(opts.Engine)
		if !ok {
			return Engine{}, errors.UnknownEngine(opts.Engine)
		}
		return e, nil
	}
	return s.catalog.SelectBestEngine(opts.Language, opts.Sector)
}

// Transcribe runs one request end to end: select, call the provider,
// standardize, correct and augment. Selection and validation errors are
// always returned; provider errors yield a simulated result only under
// FallbackSimulate.
func (s *Service) Transcribe(ctx context.Context, audio Audio, opts Options) (*Result, error) {
	start := time.Now()
	if err := validation.Validate(opts); err != nil {
		return nil, err
	}
	opts.Sector = opts.Sector.OrGeneral()

	engine, err := s.ResolveEngine(opts)
	if err != nil {
		s.recordFailure(ctx, "", opts.Sector, err)
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrEngine, engine.ID)
	observability.SetSpanAttribute(ctx, observability.AttrLanguage, opts.Language)
	observability.SetSpanAttribute(ctx, observability.AttrSector, string(opts.Sector))
	if id := logger.RequestIDFromContext(ctx); id != "" {
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
	}

	log := s.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldEngine, engine.ID,
		logger.FieldProvider, engine.Provider,
		logger.FieldLanguage, opts.Language,
		logger.FieldSector, string(opts.Sector),
	))

	result, err := s.dispatch(ctx, engine, audio, opts)
	if err != nil {
		if ctx.Err() != nil || s.policy(opts) != FallbackSimulate {
			observability.SetSpanError(ctx, err)
			s.recordFailure(ctx, engine.ID, opts.Sector, err)
			log.WithError(err).Error("transcription failed")
			return nil, err
		}
		log.WithError(err).Warn("provider failed, returning simulated result")
		result = Simulate(engine, opts.Language, err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrSimulated, result.Simulated)

	if result.Metadata.Language == "" {
		result.Metadata.Language = opts.Language
	}
	if !result.Simulated && opts.Sector != SectorGeneral {
		s.corrector.ApplyResult(result, opts.Sector, opts.Language)
		if s.metrics != nil {
			s.metrics.RecordCorrections(ctx, string(opts.Sector), len(result.Corrections))
		}
	}

	s.labelSpeakers(ctx, result, audio, opts, log)
	s.augment(ctx, result, opts, log)

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	elapsed := time.Since(start)
	result.Metadata.ProcessingTime = math.Round(elapsed.Seconds()*1000) / 1000

	if s.metrics != nil {
		s.metrics.RecordTranscription(ctx, engine.ID, string(opts.Sector), "ok", result.Simulated, elapsed)
	}
	log.Info("transcription completed", logger.Fields(
		logger.FieldSimulated, result.Simulated,
		"segments", len(result.Segments),
		"corrections", len(result.Corrections),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return result, nil
}

func (s *Service) policy(opts Options) FallbackPolicy {
	if opts.Fallback != "" {
		return opts.Fallback
	}
	return s.fallback
}

// dispatch calls the engine's provider client and standardizes its response.
func (s *Service) dispatch(ctx context.Context, engine Engine, audio Audio, opts Options) (*Result, error) {
	client, ok := s.clients.Get(engine.Provider)
	if !ok {
		return nil, errors.NoProviderClient(engine.ID, engine.Provider)
	}

	rr := provider.Chain(s.middleware...)(AsRequestResponse(client))
	raw, err := rr.Execute(ctx, Call{
		Audio: audio,
		Request: Request{
			Language:   opts.Language,
			Model:      engine.Model,
			Features:   opts.Features,
			Sector:     opts.Sector,
			Vocabulary: s.catalog.Terms(opts.Sector, opts.Language),
		},
	})
	if err != nil {
		if _, isApp := errors.AsAppError(err); !isApp && ctx.Err() == nil {
			err = errors.ProviderFailure(engine.Provider, err)
		}
		return nil, err
	}
	return Standardize(raw, engine, s.normalize)
}

// labelSpeakers runs the diarizer for providers without speaker labels.
// Failures are logged and leave the segments unlabeled.
func (s *Service) labelSpeakers(ctx context.Context, result *Result, audio Audio, opts Options, log *logger.Logger) {
	if !opts.Features.Diarization || s.diarizer == nil || result.Simulated || HasSpeakers(result.Segments) {
		return
	}
	turns, err := s.diarizer.Diarize(ctx, audio, opts.Language)
	if err != nil {
		log.WithError(err).Warn("diarization failed")
		s.recordFailure(ctx, "", "", err)
		return
	}
	n := AssignSpeakers(result.Segments, turns)
	log.Debug("speakers assigned", logger.Fields("turns", len(turns), "segments", n))
}

// augment fills the summary and translation concurrently. Failures leave
// placeholders and never fail the request.
func (s *Service) augment(ctx context.Context, result *Result, opts Options, log *logger.Logger) {
	wantSummary := opts.Features.Summary && result.Summary == ""
	wantTranslation := opts.Features.Translation && opts.TargetLanguage != ""
	if !wantSummary && !wantTranslation {
		return
	}
	if result.Simulated {
		if wantSummary {
			result.Summary = SummaryUnavailable
		}
		if wantTranslation {
			result.Translation = TranslationUnavailable
		}
		return
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAugment)
	defer span.End()

	var wg sync.WaitGroup
	if wantSummary {
		wg.Go(func() {
			result.Summary = s.summarize(ctx, result.Text, opts.Language, log)
		})
	}
	if wantTranslation {
		wg.Go(func() {
			result.Translation = s.translate(ctx, result.Text, opts, log)
		})
	}
	wg.Wait()
}

func (s *Service) summarize(ctx context.Context, text, lang string, log *logger.Logger) string {
	if s.summarizer == nil {
		log.Warn("summary requested but no summarizer is configured")
		return SummaryUnavailable
	}
	summary, err := s.summarizer.Summarize(ctx, text, lang)
	if err != nil {
		log.WithError(err).Warn("summary failed")
		s.recordFailure(ctx, "", "", err)
		return SummaryUnavailable
	}
	return summary
}

func (s *Service) translate(ctx context.Context, text string, opts Options, log *logger.Logger) string {
	if opts.TargetLanguage == opts.Language {
		return text
	}
	if s.translator == nil {
		log.Warn("translation requested but no translator is configured")
		return TranslationUnavailable
	}
	translated, err := s.translator.Translate(ctx, text, opts.Language, opts.TargetLanguage, opts.Sector)
	if err != nil {
		log.WithError(err).Warn("translation failed")
		s.recordFailure(ctx, "", "", err)
		return TranslationUnavailable
	}
	return translated
}

func (s *Service) recordFailure(ctx context.Context, engineID string, sector Sector, err error) {
	if s.metrics == nil {
		return
	}
	code := "unknown"
	if appErr, ok := errors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	s.metrics.RecordError(ctx, code, "transcription")
	if engineID != "" {
		s.metrics.RecordTranscription(ctx, engineID, string(sector), "error", false, 0)
	}
}
