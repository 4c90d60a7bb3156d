package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/server"
	"github.com/traduckxion/transcribe/storage"
	"github.com/traduckxion/transcribe/subtitles"
	"github.com/traduckxion/transcribe/transcription"
)

// storedRequest transcribes an object from media storage.
type storedRequest struct {
	StorageKey string `json:"storage_key"`
	transcription.Options
}

type transcriptionResponse struct {
	*transcription.Result
	Confidence transcription.ConfidenceSummary `json:"confidence"`
}

func (h *Handler) transcribe(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "json"))
	var sub subtitles.Format
	if format != "json" {
		f, err := subtitles.ParseFormat(format)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		sub = f
	}

	audio, opts, err := h.readRequest(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.svc.Transcribe(c.Request.Context(), audio, opts)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if sub != "" {
		body, err := subtitles.Render(sub, result.Segments)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		c.Data(http.StatusOK, sub.ContentType(), []byte(body))
		return
	}
	server.RespondOK(c, transcriptionResponse{
		Result:     result,
		Confidence: transcription.ConfidenceReport(result),
	})
}

// readRequest accepts a multipart upload or a JSON body naming a stored object.
func (h *Handler) readRequest(c *gin.Context) (transcription.Audio, transcription.Options, error) {
	mediaType, _, _ := mime.ParseMediaType(c.ContentType())
	if mediaType == "multipart/form-data" {
		return h.readUpload(c)
	}

	var req storedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return transcription.Audio{}, transcription.Options{}, errors.Validation("expected a multipart upload or a JSON body").WithCause(err)
	}
	if h.media == nil {
		return transcription.Audio{}, transcription.Options{}, errors.ServiceUnavailable("storage")
	}
	audio, err := storage.LoadAudio(c.Request.Context(), h.media, req.StorageKey, h.maxFileSize)
	if err != nil {
		return transcription.Audio{}, transcription.Options{}, err
	}
	h.log.WithContext(c.Request.Context()).Debug("loaded stored media", logger.Fields(
		"key", req.StorageKey,
		"bytes", len(audio.Data),
	))
	return audio, req.Options, nil
}

func (h *Handler) readUpload(c *gin.Context) (transcription.Audio, transcription.Options, error) {
	var audio transcription.Audio
	fh, err := c.FormFile("file")
	if err != nil {
		return audio, transcription.Options{}, errors.MissingField("file")
	}
	if fh.Size > h.maxFileSize {
		return audio, transcription.Options{}, errors.InvalidInput("file",
			fmt.Sprintf("file exceeds %d bytes", h.maxFileSize))
	}

	opts, err := formOptions(c)
	if err != nil {
		return audio, opts, err
	}

	f, err := fh.Open()
	if err != nil {
		return audio, opts, errors.Validation("cannot read uploaded file").WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxFileSize+1))
	if err != nil {
		return audio, opts, errors.Validation("cannot read uploaded file").WithCause(err)
	}
	if int64(len(data)) > h.maxFileSize {
		return audio, opts, errors.InvalidInput("file", fmt.Sprintf("file exceeds %d bytes", h.maxFileSize))
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = storage.ContentType(fh.Filename)
	}
	return transcription.Audio{Data: data, FileName: fh.Filename, ContentType: contentType}, opts, nil
}

// formOptions reads transcription options from multipart form fields.
func formOptions(c *gin.Context) (transcription.Options, error) {
	opts := transcription.Options{
		Language:       c.PostForm("language"),
		Sector:         transcription.Sector(c.PostForm("sector")),
		Engine:         c.PostForm("engine"),
		TargetLanguage: c.PostForm("target_language"),
		Fallback:       transcription.FallbackPolicy(c.PostForm("fallback")),
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"diarization", &opts.Features.Diarization},
		{"punctuation", &opts.Features.Punctuation},
		{"timestamps", &opts.Features.Timestamps},
		{"summary", &opts.Features.Summary},
		{"translation", &opts.Features.Translation},
	}
	for _, f := range flags {
		v := c.PostForm(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.InvalidInput(f.name, "must be a boolean")
		}
		*f.dst = b
	}
	if opts.TargetLanguage != "" && c.PostForm("translation") == "" {
		opts.Features.Translation = true
	}
	return opts, nil
}
