package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	apperrors "github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/transcription"
)

// LoadAudio reads the object at key into memory as transcription input.
// Objects larger than maxSize are rejected; maxSize <= 0 uses
// DefaultMaxFileSize.
func LoadAudio(ctx context.Context, s Storage, key string, maxSize int64) (transcription.Audio, error) {
	if key == "" {
		return transcription.Audio{}, apperrors.MissingField("storage_key")
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	rc, err := s.Download(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return transcription.Audio{}, apperrors.NotFound("media", key).WithCause(err)
		}
		return transcription.Audio{}, apperrors.ExternalServiceError("storage", err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxSize+1))
	if err != nil {
		return transcription.Audio{}, apperrors.ExternalServiceError("storage", fmt.Errorf("read %s: %w", key, err))
	}
	if int64(len(data)) > maxSize {
		return transcription.Audio{}, apperrors.InvalidInput("storage_key",
			fmt.Sprintf("media exceeds the %d byte limit", maxSize))
	}

	name := path.Base(key)
	return transcription.Audio{
		Data:        data,
		FileName:    name,
		ContentType: ContentType(name),
	}, nil
}

var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".mp4":  "video/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".aac":  "audio/aac",
}

// ContentType guesses a media type from a file name. Audio extensions are
// resolved without the system mime tables.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ct, ok := audioTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
