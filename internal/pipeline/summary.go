package pipeline

import (
	"math"

	"github.com/jonathan/buffet-strategist/internal/optimize"
	"github.com/jonathan/buffet-strategist/internal/stomach"
	"github.com/jonathan/buffet-strategist/internal/types"
)

// summarizeNutrition aggregates macros across all surviving dishes at their
// full estimated portions, before any selection.
func summarizeNutrition(dishes []types.ScoredDish) types.NutritionSummary {
	var s types.NutritionSummary
	for _, d := range dishes {
		factor := d.EstimatedGrams / 100.0
		n := d.Nutrition
		s.TotalAvailableCalories += n.CaloriesPer100g * factor
		s.TotalProteinG += n.ProteinGPer100g * factor
		s.TotalFatG += n.FatGPer100g * factor
		s.TotalCarbsG += n.CarbsGPer100g * factor
		s.TotalFiberG += n.FiberGPer100g * factor
		s.TotalGlycemicLoad += n.GlycemicLoadPer100g * factor
	}
	s.TotalAvailableCalories = round1(s.TotalAvailableCalories)
	s.TotalProteinG = round1(s.TotalProteinG)
	s.TotalFatG = round1(s.TotalFatG)
	s.TotalCarbsG = round1(s.TotalCarbsG)
	s.TotalFiberG = round1(s.TotalFiberG)
	s.TotalGlycemicLoad = round1(s.TotalGlycemicLoad)
	s.DishCount = len(dishes)
	return s
}

// summarizeStomach reports the gastric model over all surviving dishes and
// the selected subset.
func (o *Orchestrator) summarizeStomach(all []types.ScoredDish, selected []optimize.Selection) types.StomachSimulation {
	sim := types.StomachSimulation{CapacityML: o.capacityML}

	for _, d := range all {
		sim.TotalVolumeML += stomach.VolumeML(d.EstimatedGrams, d.Nutrition.DensityClass)
	}

	satietySum := 0.0
	for _, sel := range selected {
		sim.SelectedVolumeML += stomach.VolumeML(sel.PortionGrams, sel.Dish.Nutrition.DensityClass)
		satietySum += stomach.SatietyScore(&sel.Dish.Nutrition, sel.PortionGrams)
	}
	if len(selected) > 0 {
		sim.AvgSatietyScore = round1(satietySum / float64(len(selected)))
	}
	sim.TotalVolumeML = round1(sim.TotalVolumeML)
	sim.SelectedVolumeML = round1(sim.SelectedVolumeML)
	return sim
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
