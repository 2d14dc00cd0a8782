// Package nutrition maps dish names to reference nutrition profiles.
package nutrition

import (
	"strings"

	"github.com/jonathan/buffet-strategist/internal/dataset"
	"github.com/jonathan/buffet-strategist/internal/types"
)

const (
	// fuzzyThreshold is the minimum token-overlap similarity for a fuzzy
	// match to be accepted.
	fuzzyThreshold = 0.5

	exactConfidence    = 1.0
	fallbackConfidence = 0.3

	// maxFuzzyConfidence keeps fuzzy matches below exactConfidence, so a
	// confidence of 1.0 always means the name matched a dataset entry or
	// alias verbatim.
	maxFuzzyConfidence = 0.99
)

// Mapper performs deterministic dish-name lookups against an immutable
// reference dataset. The same input always yields the same output for a fixed
// dataset version.
type Mapper struct {
	ds *dataset.Dataset
}

// NewMapper creates a Mapper over the given dataset.
func NewMapper(ds *dataset.Dataset) *Mapper {
	return &Mapper{ds: ds}
}

// DatasetVersion returns the version identifier of the underlying dataset.
func (m *Mapper) DatasetVersion() string { return m.ds.Version() }

// Lookup resolves a dish name to a nutrition profile and a match confidence:
// 1.0 for an exact name/alias match, the overlap similarity (capped below
// 1.0) for a fuzzy match, and 0.3 for the unknown-dish fallback.
func (m *Mapper) Lookup(name string) (types.NutritionProfile, float64) {
	if e := m.ds.Exact(name); e != nil {
		return e.Profile(), exactConfidence
	}

	if e, sim := m.bestFuzzy(name); e != nil {
		if sim > maxFuzzyConfidence {
			sim = maxFuzzyConfidence
		}
		return e.Profile(), sim
	}

	return defaultProfile(), fallbackConfidence
}

// bestFuzzy finds the entry with the highest token-overlap similarity above
// the threshold. Ties keep the earlier dataset entry so results stay stable
// across runs.
func (m *Mapper) bestFuzzy(name string) (*dataset.Entry, float64) {
	queryTokens := tokenize(name)
	if len(queryTokens) == 0 {
		return nil, 0
	}

	entries := m.ds.Entries()
	var best *dataset.Entry
	bestSim := 0.0
	for i := range entries {
		e := &entries[i]
		sim := overlap(queryTokens, tokenize(e.Name))
		for _, alias := range e.Aliases {
			if s := overlap(queryTokens, tokenize(alias)); s > sim {
				sim = s
			}
		}
		if sim > bestSim {
			bestSim = sim
			best = e
		}
	}
	if bestSim < fuzzyThreshold {
		return nil, 0
	}
	return best, bestSim
}

// defaultProfile returns mid-range macro estimates for dishes absent from the
// reference dataset.
func defaultProfile() types.NutritionProfile {
	return types.NutritionProfile{
		CaloriesPer100g:     150,
		ProteinGPer100g:     8,
		CarbsGPer100g:       12,
		FatGPer100g:         8,
		FiberGPer100g:       1.5,
		GlycemicLoadPer100g: 10,
		DensityClass:        types.DensityMixed,
		Tags:                []string{"unknown"},
	}
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(s)))
}

// overlap computes |A ∩ B| / max(|A|, |B|) over token sets.
func overlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, tok := range a {
		set[tok] = true
	}
	shared := 0
	seen := make(map[string]bool, len(b))
	for _, tok := range b {
		if set[tok] && !seen[tok] {
			shared++
			seen[tok] = true
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(shared) / float64(denom)
}
