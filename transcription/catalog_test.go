package transcription

import (
	"slices"
	"testing"

	"github.com/traduckxion/transcribe/errors"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	engines := catalog.Engines()
	if len(engines) != 4 {
		t.Fatalf("expected 4 engines, got %d", len(engines))
	}
	wantOrder := []string{"whisper-v3", "deepgram", "medical-ai", "legal-ai"}
	for i, id := range wantOrder {
		if engines[i].ID != id {
			t.Errorf("engine %d: got %q, want %q", i, engines[i].ID, id)
		}
	}

	e, ok := catalog.Engine("deepgram")
	if !ok {
		t.Fatal("deepgram not found")
	}
	if e.Name != "Deepgram Nova" || e.Provider != ProviderDeepgram || e.Model != "nova-2" {
		t.Errorf("unexpected deepgram entry: %+v", e)
	}
	if _, ok := catalog.Engine("missing"); ok {
		t.Error("expected missing engine lookup to fail")
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	catalog := DefaultCatalog()

	engines := catalog.Engines()
	engines[0].Languages[0] = "xx"
	if got, _ := catalog.Engine(engines[0].ID); got.Languages[0] == "xx" {
		t.Error("Engines must return copies")
	}

	dicts := catalog.SectorDictionaries()
	dicts[SectorMedical]["fr"][0] = "changed"
	if catalog.Terms(SectorMedical, "fr")[0] == "changed" {
		t.Error("SectorDictionaries must return a deep copy")
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		engines []Engine
		code    errors.ErrorCode
	}{
		{"missing id", []Engine{{Languages: []string{"en"}, Speed: 1, Provider: "x"}}, errors.ErrCodeMissingField},
		{"no languages", []Engine{{ID: "a", Speed: 1, Provider: "x"}}, errors.ErrCodeInvalidInput},
		{"zero speed", []Engine{{ID: "a", Languages: []string{"en"}, Provider: "x"}}, errors.ErrCodeInvalidInput},
		{"accuracy out of range", []Engine{{ID: "a", Languages: []string{"en"}, Speed: 1, Accuracy: 101, Provider: "x"}}, errors.ErrCodeInvalidInput},
		{"missing provider", []Engine{{ID: "a", Languages: []string{"en"}, Speed: 1}}, errors.ErrCodeMissingField},
		{"duplicate id", []Engine{
			{ID: "a", Languages: []string{"en"}, Speed: 1, Provider: "x"},
			{ID: "a", Languages: []string{"fr"}, Speed: 1, Provider: "x"},
		}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.engines, nil)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestCatalog_LanguagesAndSectors(t *testing.T) {
	catalog := DefaultCatalog()

	langs := catalog.Languages()
	if !slices.IsSorted(langs) {
		t.Errorf("languages not sorted: %v", langs)
	}
	for _, want := range []string{"de", "en", "fr", "zh"} {
		if !slices.Contains(langs, want) {
			t.Errorf("expected %q in %v", want, langs)
		}
	}

	sectors := catalog.Sectors()
	for _, want := range []Sector{SectorGeneral, SectorMedical, SectorLegal, SectorBusiness, SectorEducation} {
		if !slices.Contains(sectors, want) {
			t.Errorf("expected %q in %v", want, sectors)
		}
	}
}

func TestSectorDictionary_Merge(t *testing.T) {
	base := DefaultDictionaries()
	merged := base.Merge(SectorDictionary{
		SectorMedical: {"fr": {"cardiologie"}},
		SectorMedia:   {"en": {"broadcast"}},
	})

	if got := merged.Terms(SectorMedical, "fr"); len(got) != 1 || got[0] != "cardiologie" {
		t.Errorf("expected override of medical/fr, got %v", got)
	}
	if got := merged.Terms(SectorMedical, "en"); len(got) == 0 {
		t.Error("medical/en should be kept")
	}
	if got := merged.Terms(SectorMedia, "en"); len(got) != 1 {
		t.Errorf("expected new media/en glossary, got %v", got)
	}
	if got := base.Terms(SectorMedical, "fr"); got[0] != "diagnostic" {
		t.Errorf("Merge must not modify the receiver, got %v", got)
	}
}
