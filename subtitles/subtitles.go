// Package subtitles renders transcript segments as SRT or WebVTT cues.
package subtitles

import (
	"fmt"
	"math"
	"strings"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/transcription"
)

// Format names a subtitle format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// ContentType returns the HTTP media type of the format.
func (f Format) ContentType() string {
	if f == FormatVTT {
		return "text/vtt; charset=utf-8"
	}
	return "application/x-subrip; charset=utf-8"
}

// ParseFormat accepts "srt" or "vtt" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSRT, FormatVTT:
		return f, nil
	default:
		return "", errors.InvalidInput("format", fmt.Sprintf("unsupported subtitle format %q", s))
	}
}

// Render dispatches to SRT or VTT.
func Render(f Format, segments []transcription.Segment) (string, error) {
	switch f {
	case FormatSRT:
		return SRT(segments)
	case FormatVTT:
		return VTT(segments)
	default:
		return "", errors.InvalidInput("format", fmt.Sprintf("unsupported subtitle format %q", f))
	}
}

// SRT renders numbered cues with HH:MM:SS,mmm timestamps.
func SRT(segments []transcription.Segment) (string, error) {
	if len(segments) == 0 {
		return "", errNoSegments()
	}
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n", i+1, timestamp(seg.Start, ','), timestamp(seg.End, ','))
		text := strings.TrimSpace(seg.Text)
		if seg.Speaker != "" {
			text = seg.Speaker + ": " + text
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// VTT renders a WEBVTT document. Speakers become voice tags.
func VTT(segments []transcription.Segment) (string, error) {
	if len(segments) == 0 {
		return "", errNoSegments()
	}
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n", i+1, timestamp(seg.Start, '.'), timestamp(seg.End, '.'))
		text := escapeVTT(strings.TrimSpace(seg.Text))
		if seg.Speaker != "" {
			text = "<v " + escapeVTT(seg.Speaker) + ">" + text
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// timestamp formats seconds as HH:MM:SS<sep>mmm, rounding to the millisecond.
func timestamp(seconds float64, sep byte) string {
	ms := int64(math.Round(max(seconds, 0) * 1000))
	h := ms / 3_600_000
	m := ms % 3_600_000 / 60_000
	s := ms % 60_000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms%1000)
}

var vttEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeVTT(s string) string { return vttEscaper.Replace(s) }

func errNoSegments() error {
	return errors.Validation("no segments available for subtitles")
}
