// Package filter removes disallowed dishes before scoring: allergies first,
// then dietary constraints. It only partitions the list and never errors;
// unmatched allergy terms are no-ops.
package filter

import (
	"fmt"
	"strings"

	"github.com/jonathan/buffet-strategist/internal/types"
)

// TagLookup resolves a dish name to its category/diet tags. The nutrition
// mapper satisfies this; filtering runs its lookup first purely for tagging.
type TagLookup interface {
	Lookup(name string) (types.NutritionProfile, float64)
}

// dietaryExclusions maps a dietary filter to the tags it forbids.
var dietaryExclusions = map[string][]string{
	"vegan":      {"meat", "dairy", "egg", "fish"},
	"vegetarian": {"meat", "fish"},
	"halal":      {"pork", "alcohol"},
}

// Result partitions the input dishes.
type Result struct {
	Kept    []types.Dish
	Skipped []types.SkipEntry
}

// Apply moves dishes violating an allergy term or dietary filter to the skip
// list. Allergy terms are matched case-insensitively as substrings of the
// dish name and its tags.
func Apply(dishes []types.Dish, tags TagLookup, allergies, dietaryFilters []string) Result {
	var res Result
	for _, d := range dishes {
		profile, _ := tags.Lookup(d.Name)

		if term := matchAllergy(&d, &profile, allergies); term != "" {
			res.Skipped = append(res.Skipped, types.SkipEntry{
				Name:   d.Name,
				Reason: fmt.Sprintf("allergy:%s", term),
			})
			continue
		}
		if f := matchDietary(&profile, dietaryFilters); f != "" {
			res.Skipped = append(res.Skipped, types.SkipEntry{
				Name:   d.Name,
				Reason: fmt.Sprintf("dietary:%s", f),
			})
			continue
		}
		res.Kept = append(res.Kept, d)
	}
	return res
}

func matchAllergy(d *types.Dish, n *types.NutritionProfile, allergies []string) string {
	name := strings.ToLower(d.Name)
	for _, raw := range allergies {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			continue
		}
		if strings.Contains(name, term) {
			return strings.TrimSpace(raw)
		}
		for _, tag := range n.Tags {
			if strings.Contains(strings.ToLower(tag), term) || strings.Contains(term, strings.ToLower(tag)) {
				return strings.TrimSpace(raw)
			}
		}
	}
	return ""
}

func matchDietary(n *types.NutritionProfile, filters []string) string {
	for _, raw := range filters {
		f := strings.ToLower(strings.TrimSpace(raw))
		excluded, ok := dietaryExclusions[f]
		if !ok {
			continue
		}
		for _, tag := range excluded {
			if n.HasTag(tag) {
				return f
			}
		}
	}
	return ""
}
