package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/buffet-strategist/internal/types"
)

func TestLoad(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "usda-2024.1", ds.Version())
	assert.Greater(t, ds.Len(), 30, "expected the full embedded food list")
}

func TestExactLookup(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	entry := ds.Exact("Grilled Chicken")
	require.NotNil(t, entry)
	assert.Equal(t, 165.0, entry.Calories)
	assert.Equal(t, 31.0, entry.Protein)

	// Aliases resolve to the same entry
	alias := ds.Exact("chicken breast")
	require.NotNil(t, alias)
	assert.Equal(t, entry, alias)

	// Whitespace and case are normalized
	assert.NotNil(t, ds.Exact("  MIXED   salad "))

	assert.Nil(t, ds.Exact("dragon fruit smoothie"))
}

func TestProfileConversion(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	entry := ds.Exact("soup")
	require.NotNil(t, entry)

	p := entry.Profile()
	assert.Equal(t, types.DensityLiquid, p.DensityClass)
	assert.True(t, p.HasTag("soup"))
	assert.Equal(t, 45.0, p.CaloriesPer100g)
}

func TestParseRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing version", "foods:\n  - name: rice\n    density_class: mixed\n"},
		{"duplicate name", "version: v1\nfoods:\n  - name: rice\n    density_class: mixed\n  - name: Rice\n    density_class: mixed\n"},
		{"bad density class", "version: v1\nfoods:\n  - name: rice\n    density_class: gaseous\n"},
		{"empty name", "version: v1\nfoods:\n  - name: \"\"\n    density_class: mixed\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDensityClassesValid(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	for _, e := range ds.Entries() {
		switch types.DensityClass(e.DensityClass) {
		case types.DensityLiquid, types.DensityFibrous, types.DensityDense, types.DensityMixed:
		default:
			t.Errorf("entry %q has invalid density class %q", e.Name, e.DensityClass)
		}
	}
}
