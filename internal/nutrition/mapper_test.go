package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/buffet-strategist/internal/dataset"
	"github.com/jonathan/buffet-strategist/internal/types"
)

func newTestMapper(t *testing.T) *Mapper {
	t.Helper()
	ds, err := dataset.Load()
	require.NoError(t, err)
	return NewMapper(ds)
}

func TestLookupExact(t *testing.T) {
	m := newTestMapper(t)

	profile, conf := m.Lookup("Grilled Chicken")
	assert.Equal(t, 1.0, conf)
	assert.Equal(t, 165.0, profile.CaloriesPer100g)
	assert.True(t, profile.HasTag("meat"))
}

func TestLookupFuzzy(t *testing.T) {
	m := newTestMapper(t)

	// "chicken grilled skewers": shares 2 of 3 tokens with "grilled chicken"
	profile, conf := m.Lookup("grilled chicken skewers")
	assert.Greater(t, conf, 0.5)
	assert.Less(t, conf, 1.0)
	assert.Equal(t, 31.0, profile.ProteinGPer100g)
}

func TestLookupPermutedNameIsNotExact(t *testing.T) {
	m := newTestMapper(t)

	// Token order differs from the dataset entry, so the full overlap still
	// resolves as a fuzzy match and must stay below exact confidence.
	permuted, permConf := m.Lookup("Salad Mixed")
	exact, exactConf := m.Lookup("Mixed Salad")

	assert.Equal(t, 1.0, exactConf)
	assert.Less(t, permConf, 1.0)
	assert.GreaterOrEqual(t, permConf, fuzzyThreshold)
	assert.Equal(t, exact, permuted, "both names resolve to the same entry")
}

func TestLookupFallback(t *testing.T) {
	m := newTestMapper(t)

	profile, conf := m.Lookup("mystery casserole surprise")
	assert.Equal(t, 0.3, conf)
	assert.Equal(t, types.DensityMixed, profile.DensityClass)
	assert.Equal(t, 150.0, profile.CaloriesPer100g)
}

func TestLookupDeterministic(t *testing.T) {
	m := newTestMapper(t)

	names := []string{"Rice", "chicken soup", "unknown thing", "Peanut Stir Fry"}
	for _, name := range names {
		p1, c1 := m.Lookup(name)
		p2, c2 := m.Lookup(name)
		assert.Equal(t, p1, p2, "profile for %q must be stable", name)
		assert.Equal(t, c1, c2, "confidence for %q must be stable", name)
	}
}

func TestOverlap(t *testing.T) {
	cases := []struct {
		a, b []string
		want float64
	}{
		{[]string{"grilled", "chicken"}, []string{"grilled", "chicken"}, 1.0},
		{[]string{"grilled", "chicken", "skewers"}, []string{"grilled", "chicken"}, 2.0 / 3.0},
		{[]string{"beef"}, []string{"chicken"}, 0},
		{nil, []string{"chicken"}, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, overlap(tc.a, tc.b), 1e-9)
	}
}
