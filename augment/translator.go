package augment

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/traduckxion/transcribe/llm"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/provider"
	"github.com/traduckxion/transcribe/transcription"
)

// DefaultCacheTTL is how long a cached translation stays valid.
const DefaultCacheTTL = 24 * time.Hour

// Translation is the cached form of a translated text.
type Translation struct {
	Text           string               `json:"text"`
	SourceLanguage string               `json:"source_language"`
	TargetLanguage string               `json:"target_language"`
	Sector         transcription.Sector `json:"sector"`
	Model          string               `json:"model,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Translator translates transcripts with sector-specific prompts.
type Translator struct {
	llm   Completer
	cache provider.ContextStore[Translation]
	ttl   time.Duration
	log   *logger.Logger
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithCache enables the translation cache.
func WithCache(store provider.ContextStore[Translation], ttl time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.cache = store
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// WithTranslatorLogger sets the logger used for cache warnings.
func WithTranslatorLogger(l *logger.Logger) TranslatorOption {
	return func(t *Translator) { t.log = l }
}

// NewTranslator creates a Translator backed by the given completer.
func NewTranslator(c Completer, opts ...TranslatorOption) *Translator {
	t := &Translator{llm: c, ttl: DefaultCacheTTL, log: logger.Get("augment")}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate renders text from one language into another. Cache failures
// are logged and never fail the translation.
func (t *Translator) Translate(ctx context.Context, text, from, to string, sector transcription.Sector) (string, error) {
	key := CacheKey(text, to)
	if t.cache != nil {
		cached, err := t.cache.Load(ctx, key)
		if err != nil {
			t.log.WithContext(ctx).Warn("translation cache read failed", logger.ErrorFields("cache_load", err))
		} else if cached != nil && cached.SourceLanguage == from && cached.Sector == sector {
			return cached.Text, nil
		}
	}

	user := fmt.Sprintf("Traduisez le texte suivant du %s vers le %s.\nConservez le formatage, le ton et le style.\n\nTexte à traduire:\n%s",
		languageName(from), languageName(to), text)
	translated, err := llm.Complete(ctx, t.llm, SystemPrompt(sector), user,
		llm.WithTemperature(defaultTemperature),
		llm.WithMaxTokens(min(2*len(text), maxTokensCap)))
	if err != nil {
		return "", fmt.Errorf("augment: translate %s->%s: %w", from, to, err)
	}

	if t.cache != nil {
		entry := &Translation{
			Text:           translated,
			SourceLanguage: from,
			TargetLanguage: to,
			Sector:         sector,
			CreatedAt:      time.Now().UTC(),
		}
		if err := t.cache.Save(ctx, key, entry, t.ttl); err != nil {
			t.log.WithContext(ctx).Warn("translation cache write failed", logger.ErrorFields("cache_save", err))
		}
	}
	return translated, nil
}

// CacheKey builds the cache key for a translation target. The base64
// prefix keeps keys readable; the digest suffix separates texts that share
// a prefix.
func CacheKey(text, target string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if len(encoded) > 50 {
		encoded = encoded[:50]
	}
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("translation:%s:%s:%s", target, encoded, hex.EncodeToString(sum[:8]))
}
