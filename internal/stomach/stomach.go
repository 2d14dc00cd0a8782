// Package stomach models gastric volume, satiety, and fullness. All functions
// are pure; any pipeline stage may call them.
package stomach

import "github.com/jonathan/buffet-strategist/internal/types"

// DefaultCapacityML is the default gastric capacity.
const DefaultCapacityML = 1350.0

// densityFactor maps a density class to estimated hydrated volume per gram
// (ml/g). Liquids occupy the most space per gram, dense foods the least.
var densityFactor = map[types.DensityClass]float64{
	types.DensityLiquid:  1.25,
	types.DensityFibrous: 1.10,
	types.DensityMixed:   1.00,
	types.DensityDense:   0.85,
}

// Satiety weights, calibrated so soups and salads score high per calorie.
const (
	wFiber   = 4.0
	wProtein = 1.5
	wVolume  = 0.1
)

// VolumeML estimates the hydrated stomach volume of a portion.
func VolumeML(grams float64, class types.DensityClass) float64 {
	factor, ok := densityFactor[class]
	if !ok {
		factor = densityFactor[types.DensityMixed]
	}
	return grams * factor
}

// SatietyScore estimates the fullness contributed by a portion of the given
// dish, combining fiber, protein, and hydrated volume.
func SatietyScore(n *types.NutritionProfile, grams float64) float64 {
	per100 := grams / 100.0
	fiber := n.FiberGPer100g * per100
	protein := n.ProteinGPer100g * per100
	volume := VolumeML(grams, n.DensityClass)
	return fiber*wFiber + protein*wProtein + volume*wVolume
}

// SatietyPerGram is the satiety contributed per gram of the dish, used to
// order items within a phase (cheap fullness first).
func SatietyPerGram(n *types.NutritionProfile) float64 {
	return SatietyScore(n, 100) / 100.0
}

// FullnessScore converts cumulative consumed volume to a fullness ratio
// clipped to [0,1]. Callers that need overflow diagnostics track the
// unclipped ratio themselves.
func FullnessScore(cumulativeML, capacityML float64) float64 {
	if capacityML <= 0 {
		return 0
	}
	ratio := cumulativeML / capacityML
	if ratio > 1.0 {
		return 1.0
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}
