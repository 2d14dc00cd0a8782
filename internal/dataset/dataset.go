// Package dataset provides the embedded, versioned nutrition reference data.
//
// The dataset is loaded once at process start and treated as immutable for the
// process lifetime; concurrent readers need no locking.
package dataset

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/buffet-strategist/internal/types"
)

//go:embed foods.yaml
var foodsYAML []byte

// Entry is a single reference food with per-100g values.
type Entry struct {
	Name         string   `yaml:"name"`
	Aliases      []string `yaml:"aliases,omitempty"`
	Calories     float64  `yaml:"calories"`
	Protein      float64  `yaml:"protein"`
	Fat          float64  `yaml:"fat"`
	Carbs        float64  `yaml:"carbs"`
	Fiber        float64  `yaml:"fiber"`
	GlycemicLoad float64  `yaml:"glycemic_load"`
	DensityClass string   `yaml:"density_class"`
	Tags         []string `yaml:"tags"`
}

// Profile converts the entry to the shared nutrition profile type.
func (e *Entry) Profile() types.NutritionProfile {
	return types.NutritionProfile{
		CaloriesPer100g:     e.Calories,
		ProteinGPer100g:     e.Protein,
		CarbsGPer100g:       e.Carbs,
		FatGPer100g:         e.Fat,
		FiberGPer100g:       e.Fiber,
		GlycemicLoadPer100g: e.GlycemicLoad,
		DensityClass:        types.DensityClass(e.DensityClass),
		Tags:                append([]string{}, e.Tags...),
	}
}

type fileFormat struct {
	Version string  `yaml:"version"`
	Foods   []Entry `yaml:"foods"`
}

// Dataset is an immutable name-keyed view over the reference foods.
type Dataset struct {
	version string
	entries []Entry
	byName  map[string]*Entry
}

// Load parses the embedded reference data. It is cheap enough to call once at
// startup; callers share the returned Dataset.
func Load() (*Dataset, error) {
	return parse(foodsYAML)
}

func parse(data []byte) (*Dataset, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition dataset: %w", err)
	}
	if file.Version == "" {
		return nil, fmt.Errorf("nutrition dataset has no version identifier")
	}

	ds := &Dataset{
		version: file.Version,
		entries: file.Foods,
		byName:  make(map[string]*Entry, len(file.Foods)*2),
	}
	for i := range ds.entries {
		e := &ds.entries[i]
		key := normalizeKey(e.Name)
		if key == "" {
			return nil, fmt.Errorf("nutrition dataset entry %d has an empty name", i)
		}
		if _, dup := ds.byName[key]; dup {
			return nil, fmt.Errorf("duplicate nutrition dataset entry %q", e.Name)
		}
		ds.byName[key] = e
		for _, alias := range e.Aliases {
			aliasKey := normalizeKey(alias)
			if _, dup := ds.byName[aliasKey]; !dup {
				ds.byName[aliasKey] = e
			}
		}
		switch types.DensityClass(e.DensityClass) {
		case types.DensityLiquid, types.DensityFibrous, types.DensityDense, types.DensityMixed:
		default:
			return nil, fmt.Errorf("entry %q has unknown density class %q", e.Name, e.DensityClass)
		}
	}
	return ds, nil
}

// Version returns the dataset version identifier.
func (d *Dataset) Version() string { return d.version }

// Len returns the number of reference foods (aliases excluded).
func (d *Dataset) Len() int { return len(d.entries) }

// Exact returns the entry whose name or alias matches the given dish name
// case-insensitively, or nil.
func (d *Dataset) Exact(name string) *Entry {
	return d.byName[normalizeKey(name)]
}

// Entries returns the reference foods in file order. Callers must not mutate
// the returned slice.
func (d *Dataset) Entries() []Entry { return d.entries }

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
