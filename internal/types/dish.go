// Package types provides type definitions for structured data used throughout the buffet-strategist system.
package types

// DensityClass describes how a dish occupies stomach volume relative to its weight.
type DensityClass string

const (
	DensityLiquid  DensityClass = "liquid"
	DensityFibrous DensityClass = "fibrous"
	DensityDense   DensityClass = "dense"
	DensityMixed   DensityClass = "mixed"
)

// Dish is a single buffet item, either detected from an image or entered
// manually. It is immutable once produced by the input stage.
type Dish struct {
	Name           string  `json:"name"`
	EstimatedGrams float64 `json:"estimated_grams"`
	// Confidence is the detection confidence in [0,1]. Manual entries use 1.0.
	Confidence float64 `json:"confidence"`
}

// NutritionProfile holds per-100g nutrition reference values for a dish.
// Profiles come from the read-only reference dataset and are never mutated.
type NutritionProfile struct {
	CaloriesPer100g     float64      `json:"calories_per_100g"`
	ProteinGPer100g     float64      `json:"protein_g_per_100g"`
	CarbsGPer100g       float64      `json:"carbs_g_per_100g"`
	FatGPer100g         float64      `json:"fat_g_per_100g"`
	FiberGPer100g       float64      `json:"fiber_g_per_100g"`
	GlycemicLoadPer100g float64      `json:"glycemic_load_per_100g"`
	DensityClass        DensityClass `json:"density_class"`
	Tags                []string     `json:"tags"`
}

// HasTag reports whether the profile carries the given category/diet tag.
func (p *NutritionProfile) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CalorieDensity returns calories per gram.
func (p *NutritionProfile) CalorieDensity() float64 {
	return p.CaloriesPer100g / 100.0
}

// ScoredDish is a dish enriched with its nutrition profile, the optimizer's
// goal score, and the confidence of the dataset match.
type ScoredDish struct {
	Dish
	Nutrition NutritionProfile `json:"nutrition_per_100g"`
	GoalScore float64          `json:"goal_score"`
	// MatchConfidence is 1.0 for an exact dataset name match, lower for
	// fuzzy or fallback matches.
	MatchConfidence float64 `json:"match_confidence"`
	// DetectionOrder is the dish's index in the original input list. Equal
	// goal scores are tie-broken by this to keep selection deterministic.
	DetectionOrder int `json:"-"`
}
