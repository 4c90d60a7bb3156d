package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/traduckxion/transcribe/api"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/observability"
	"github.com/traduckxion/transcribe/provider"
	"github.com/traduckxion/transcribe/server"
	"github.com/traduckxion/transcribe/server/middleware"
	"github.com/traduckxion/transcribe/storage"
	"github.com/traduckxion/transcribe/transcription"

	// Storage backends register themselves with storage.New.
	_ "github.com/traduckxion/transcribe/storage/local"
	_ "github.com/traduckxion/transcribe/storage/s3"
)

// Hook is a lifecycle callback run on shutdown.
type Hook func(ctx context.Context) error

// App owns the transcription service and everything it depends on.
type App struct {
	Cfg     *Config
	Logger  *logger.Logger
	Service *transcription.Service
	Clients *provider.Registry[transcription.Client]
	Storage storage.Storage

	metrics         *observability.Metrics
	meter           *observability.MeterProvider
	health          []healthProbe
	server          *server.Server
	onStop          []Hook
	gracefulTimeout time.Duration
}

// Option customizes New.
type Option func(*options)

type options struct {
	logger  *logger.Logger
	clients map[string]transcription.Client
	storage storage.Storage
}

// WithLogger replaces the logger built from the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClient registers a provider client in place of the configured one.
func WithClient(kind string, c transcription.Client) Option {
	return func(o *options) {
		if o.clients == nil {
			o.clients = make(map[string]transcription.Client)
		}
		o.clients[kind] = c
	}
}

// WithStorage replaces the configured media storage.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage = s }
}

// New validates cfg and builds the service graph: observability, provider
// clients, the LLM post-steps with their cache, media storage and the
// transcription service.
func New(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Cfg: cfg, gracefulTimeout: 15 * time.Second}
	if o.logger != nil {
		a.Logger = o.logger
	} else {
		logger.Init(cfg.Logging, cfg.Name)
		a.Logger = logger.GetGlobalLogger()
	}

	if err := a.initObservability(ctx); err != nil {
		return nil, err
	}

	clients, err := a.buildClients(o.clients)
	if err != nil {
		a.shutdown(ctx)
		return nil, err
	}
	a.Clients = clients

	catalog, err := a.buildCatalog()
	if err != nil {
		a.shutdown(ctx)
		return nil, err
	}

	svcOpts, err := a.buildAugment(ctx)
	if err != nil {
		a.shutdown(ctx)
		return nil, err
	}
	diarOpts, err := a.buildDiarizer()
	if err != nil {
		a.shutdown(ctx)
		return nil, err
	}
	svcOpts = append(svcOpts, diarOpts...)

	a.Storage = o.storage
	if a.Storage == nil && cfg.Storage.Enabled {
		a.Storage, err = storage.New(cfg.Storage, a.Logger.WithComponent("storage"))
		if err != nil {
			a.shutdown(ctx)
			return nil, fmt.Errorf("storage: %w", err)
		}
	}

	fallback, _ := transcription.ParseFallbackPolicy(cfg.Transcription.Fallback)
	svcOpts = append(svcOpts,
		transcription.WithFallback(fallback),
		transcription.WithNormalizeConfig(cfg.Transcription.Normalize),
		transcription.WithCorrector(transcription.NewCorrector(catalog.SectorDictionaries(), cfg.Transcription.CorrectionThreshold)),
		transcription.WithClientMiddleware(a.clientMiddleware()...),
		transcription.WithLogger(a.Logger.WithComponent("transcription")),
	)
	if a.metrics != nil {
		svcOpts = append(svcOpts, transcription.WithMetrics(a.metrics))
	}
	a.Service = transcription.NewService(catalog, clients, svcOpts...)

	a.Logger.Info("transcription service ready", logger.Fields(
		"engines", len(catalog.Engines()),
		"providers", clients.Instances(),
		"fallback", string(fallback),
		"llm", cfg.LLM.Enabled(),
		"cache", cfg.Cache.Driver,
		"storage", a.Storage != nil,
	))
	return a, nil
}

func (a *App) buildCatalog() (*transcription.Catalog, error) {
	catalog, err := a.Cfg.Catalog()
	if err != nil {
		return nil, err
	}
	for _, e := range catalog.Engines() {
		if _, ok := a.Clients.Get(e.Provider); !ok {
			a.Logger.Warn("engine has no provider client", logger.Fields(
				logger.FieldEngine, e.ID,
				logger.FieldProvider, e.Provider,
			))
		}
	}
	return catalog, nil
}

func (a *App) initObservability(ctx context.Context) error {
	obs := a.Cfg.Observability
	if obs.Metrics {
		mp, err := observability.InitMeter(ctx, obs.Meter)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		a.meter = mp
		a.OnStop(mp.Shutdown)
		a.metrics, err = observability.NewMetrics(mp.Meter(a.Cfg.Name))
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	if obs.Tracing {
		tp, err := observability.InitTracer(ctx, obs.Tracer)
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		a.OnStop(tp.Shutdown)
	}
	return nil
}

// clientMiddleware wraps every provider call, outermost first.
func (a *App) clientMiddleware() []provider.Middleware[transcription.Call, *transcription.RawTranscript] {
	mw := []provider.Middleware[transcription.Call, *transcription.RawTranscript]{
		provider.WithLogging[transcription.Call, *transcription.RawTranscript](a.Logger.WithComponent("provider")),
	}
	if a.Cfg.Observability.Tracing {
		mw = append(mw, provider.WithTracing[transcription.Call, *transcription.RawTranscript](a.Cfg.Name))
	}
	if a.metrics != nil {
		mw = append(mw, provider.WithMetrics[transcription.Call, *transcription.RawTranscript](a.metrics))
	}
	if a.Cfg.Transcription.Retry.MaxAttempts > 1 {
		mw = append(mw, provider.WithRetry[transcription.Call, *transcription.RawTranscript](a.Cfg.Transcription.Retry))
	}
	return mw
}

// OnStop registers a hook run by Close, in reverse registration order.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// Handler returns the API handler bound to the service.
func (a *App) Handler() *api.Handler {
	opts := []api.Option{
		api.WithLogger(a.Logger.WithComponent("api")),
		api.WithMaxFileSize(a.Cfg.Storage.MaxBytes()),
	}
	if a.Storage != nil {
		opts = append(opts, api.WithStorage(a.Storage))
	}
	return api.New(a.Service, opts...)
}

// Server builds the HTTP server with the default endpoints and the API
// mounted under /api/v1. It is built once.
func (a *App) Server() *server.Server {
	if a.server != nil {
		return a.server
	}
	srv := server.New(a.Cfg.Server, a.Logger.WithComponent("server"))
	srv.ApplyMiddleware(a.metrics)

	var metricsHandler http.Handler
	if a.meter != nil {
		metricsHandler = a.meter.Handler()
	}
	srv.RegisterDefaultEndpoints(a.Cfg.Name, a.HealthCheck, metricsHandler)

	group := srv.GinEngine().Group("/api/v1")
	if a.Cfg.Server.RateLimit > 0 {
		group.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: a.Cfg.Server.RateLimit}))
	}
	a.Handler().Register(group)

	a.server = srv
	return srv
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (a *App) Run(ctx context.Context) error {
	srv := a.Server()
	if err := srv.Start(ctx); err != nil {
		return err
	}
	a.OnStop(srv.Stop)

	a.Logger.Info("Application ready, waiting for shutdown signal", logger.Fields(
		"addr", srv.Addr(),
	))
	a.WaitForSignal(ctx)
	return a.Close(context.Background())
}

// RunTask runs a finite task, canceling it on SIGINT or SIGTERM, then closes the app.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if err := a.Close(context.Background()); err != nil && taskErr == nil {
		return err
	}
	return taskErr
}

// WaitForSignal blocks until ctx is done or SIGINT/SIGTERM is received.
func (a *App) WaitForSignal(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
	}
}

// Close runs the stop hooks and closes the provider clients within the
// graceful timeout.
func (a *App) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.gracefulTimeout)
	defer cancel()

	var errs []error
	for i := len(a.onStop) - 1; i >= 0; i-- {
		if err := a.onStop[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.onStop = nil
	if a.Clients != nil {
		if err := a.Clients.CloseAll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := stderrors.Join(errs...); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.ErrorFields("close", err))
		return err
	}
	a.Logger.Info("Graceful shutdown completed")
	return nil
}

// shutdown releases what New acquired before it failed.
func (a *App) shutdown(ctx context.Context) {
	_ = a.Close(ctx)
}
