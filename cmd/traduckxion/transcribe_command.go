package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/traduckxion/transcribe/app"
	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/storage"
	"github.com/traduckxion/transcribe/subtitles"
	"github.com/traduckxion/transcribe/transcription"
)

type transcribeFlags struct {
	language    string
	sector      string
	engine      string
	translateTo string
	summary     bool
	diarize     bool
	format      string
	output      string
	fromStorage bool
	simulate    bool
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var f transcribeFlags
	cmd := &cobra.Command{
		Use:   "transcribe <file|storage-key>",
		Short: "Transcribe an audio file or a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			return a.RunTask(cmd.Context(), func(taskCtx context.Context) error {
				return runTranscribe(taskCtx, cmd, a, args[0], f)
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.language, "language", "l", "fr", "Spoken language code")
	fl.StringVarP(&f.sector, "sector", "s", "", "Sector (general, medical, legal, education, business, media)")
	fl.StringVarP(&f.engine, "engine", "e", "", "Force an engine id instead of selecting one")
	fl.StringVar(&f.translateTo, "translate-to", "", "Translate the transcript to this language")
	fl.BoolVar(&f.summary, "summary", false, "Add an LLM summary")
	fl.BoolVar(&f.diarize, "diarize", false, "Label speakers when the provider supports it")
	fl.StringVarP(&f.format, "format", "f", "text", "Output format: json, text, srt or vtt")
	fl.StringVarP(&f.output, "output", "o", "", "Write the output to a file instead of stdout")
	fl.BoolVar(&f.fromStorage, "storage", false, "Treat the argument as a media storage key")
	fl.BoolVar(&f.simulate, "simulate-on-failure", false, "Return a simulated result when the provider fails")
	return cmd
}

func runTranscribe(ctx context.Context, cmd *cobra.Command, a *app.App, source string, f transcribeFlags) error {
	format := strings.ToLower(f.format)
	switch format {
	case "json", "text", "srt", "vtt":
	default:
		return errors.InvalidInput("format", fmt.Sprintf("unsupported output format %q", f.format))
	}

	audio, err := loadAudio(ctx, a, source, f.fromStorage)
	if err != nil {
		return err
	}

	opts := transcription.Options{
		Language:       f.language,
		Sector:         transcription.Sector(f.sector),
		Engine:         f.engine,
		TargetLanguage: f.translateTo,
		Features: transcription.Features{
			Diarization: f.diarize,
			Punctuation: true,
			Timestamps:  true,
			Summary:     f.summary,
			Translation: f.translateTo != "",
		},
	}
	if f.simulate {
		opts.Fallback = transcription.FallbackSimulate
	}

	result, err := a.Service.Transcribe(ctx, audio, opts)
	if err != nil {
		return err
	}
	if result.Simulated {
		warnf(cmd, "provider failed, simulated result: %s", result.FallbackReason)
	}

	out, err := renderResult(result, format)
	if err != nil {
		return err
	}
	if f.output != "" {
		return os.WriteFile(f.output, []byte(out), 0o644)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func loadAudio(ctx context.Context, a *app.App, source string, fromStorage bool) (transcription.Audio, error) {
	if fromStorage {
		if a.Storage == nil {
			return transcription.Audio{}, errors.ServiceUnavailable("storage")
		}
		return storage.LoadAudio(ctx, a.Storage, source, a.Cfg.Storage.MaxBytes())
	}

	info, err := os.Stat(source)
	if err != nil {
		return transcription.Audio{}, errors.NotFound("file", source)
	}
	if info.Size() > a.Cfg.Storage.MaxBytes() {
		return transcription.Audio{}, errors.InvalidInput("file", fmt.Sprintf("file exceeds %d bytes", a.Cfg.Storage.MaxBytes()))
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return transcription.Audio{}, err
	}
	name := filepath.Base(source)
	return transcription.Audio{Data: data, FileName: name, ContentType: storage.ContentType(name)}, nil
}

func renderResult(r *transcription.Result, format string) (string, error) {
	switch format {
	case "json":
		var sb strings.Builder
		enc := newIndentEncoder(&sb)
		if err := enc.Encode(struct {
			*transcription.Result
			Confidence transcription.ConfidenceSummary `json:"confidence"`
		}{r, transcription.ConfidenceReport(r)}); err != nil {
			return "", err
		}
		return sb.String(), nil
	case "srt", "vtt":
		return subtitles.Render(subtitles.Format(format), r.Segments)
	}

	var sb strings.Builder
	sb.WriteString(r.Text)
	sb.WriteString("\n")
	if r.Summary != "" {
		fmt.Fprintf(&sb, "\nSummary:\n%s\n", r.Summary)
	}
	if r.Translation != "" {
		fmt.Fprintf(&sb, "\nTranslation:\n%s\n", r.Translation)
	}
	fmt.Fprintf(&sb, "\n%s, %d words, %.1fs, %d correction(s)\n",
		r.Metadata.Engine, r.Metadata.WordCount, r.Metadata.Duration, len(r.Corrections))
	return sb.String(), nil
}
