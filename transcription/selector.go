package transcription

import (
	"slices"

	"github.com/traduckxion/transcribe/errors"
)

// SelectBestEngine picks an engine for the language and sector:
// engines supporting the language, narrowed to those specialized for a
// non-general sector when any exist, ranked by Score descending. Ties keep
// catalog order.
func (c *Catalog) SelectBestEngine(language string, sector Sector) (Engine, error) {
	return SelectBestEngine(c.engines, language, sector)
}

// SelectBestEngine applies the selection rule to an explicit engine list.
func SelectBestEngine(engines []Engine, language string, sector Sector) (Engine, error) {
	sector = sector.OrGeneral()

	candidates := make([]Engine, 0, len(engines))
	for _, e := range engines {
		if e.Supports(language) {
			candidates = append(candidates, e)
		}
	}

	if sector != SectorGeneral {
		specialized := slices.DeleteFunc(slices.Clone(candidates), func(e Engine) bool {
			return !e.SpecializedFor(sector)
		})
		if len(specialized) > 0 {
			candidates = specialized
		}
	}

	if len(candidates) == 0 {
		return Engine{}, errors.NoEngineAvailable(language, string(sector))
	}

	slices.SortStableFunc(candidates, func(a, b Engine) int {
		sa, sb := a.Score(), b.Score()
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return 0
	})
	return cloneEngine(candidates[0]), nil
}
