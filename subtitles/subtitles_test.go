package subtitles

import (
	"testing"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/transcription"
)

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		sep  byte
		want string
	}{
		{0, ',', "00:00:00,000"},
		{1.3, ',', "00:00:01,300"},
		{61.25, '.', "00:01:01.250"},
		{3725.5, '.', "01:02:05.500"},
		{59.9996, ',', "00:01:00,000"},
		{-1, ',', "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := timestamp(tt.in, tt.sep); got != tt.want {
			t.Errorf("timestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var segments = []transcription.Segment{
	{Start: 0, End: 2.5, Text: " Bonjour docteur. "},
	{Start: 2.5, End: 5, Text: "J'ai mal <ici>", Speaker: "Speaker 2"},
}

func TestSRT(t *testing.T) {
	got, err := SRT(segments)
	if err != nil {
		t.Fatalf("SRT: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:02,500\nBonjour docteur.\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\nSpeaker 2: J'ai mal <ici>\n\n"
	if got != want {
		t.Errorf("SRT =\n%q\nwant\n%q", got, want)
	}
}

func TestVTT(t *testing.T) {
	got, err := VTT(segments)
	if err != nil {
		t.Fatalf("VTT: %v", err)
	}
	want := "WEBVTT\n\n" +
		"1\n00:00:00.000 --> 00:00:02.500\nBonjour docteur.\n\n" +
		"2\n00:00:02.500 --> 00:00:05.000\n<v Speaker 2>J'ai mal &lt;ici&gt;\n\n"
	if got != want {
		t.Errorf("VTT =\n%q\nwant\n%q", got, want)
	}
}

func TestEmpty(t *testing.T) {
	for _, f := range []Format{FormatSRT, FormatVTT} {
		if _, err := Render(f, nil); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Errorf("%s: err = %v, want INVALID_INPUT", f, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"srt", FormatSRT, false},
		{" VTT ", FormatVTT, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
