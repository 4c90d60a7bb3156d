package api

import (
	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/storage"
	"github.com/traduckxion/transcribe/transcription"
)

// Handler serves the transcription API.
type Handler struct {
	svc         *transcription.Service
	media       storage.Storage
	maxFileSize int64
	log         *logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithStorage lets clients transcribe stored objects by key.
func WithStorage(s storage.Storage) Option {
	return func(h *Handler) { h.media = s }
}

// WithMaxFileSize bounds uploads and stored objects, in bytes.
func WithMaxFileSize(n int64) Option {
	return func(h *Handler) { h.maxFileSize = n }
}

// WithLogger sets the handler logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// New creates a Handler over svc.
func New(svc *transcription.Service, opts ...Option) *Handler {
	h := &Handler{
		svc:         svc,
		maxFileSize: storage.DefaultMaxFileSize,
		log:         logger.Get("api"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/engines", h.listEngines)
	r.GET("/engines/:id", h.getEngine)
	r.POST("/engines/select", h.selectEngine)
	r.GET("/sectors", h.listSectors)
	r.POST("/transcriptions", h.transcribe)
	r.POST("/corrections", h.correct)
	r.POST("/quality", h.quality)
}
