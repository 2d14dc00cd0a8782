// Package strategy orders selected portions into named eating phases.
package strategy

import (
	"math"
	"sort"

	"github.com/jonathan/buffet-strategist/internal/optimize"
	"github.com/jonathan/buffet-strategist/internal/stomach"
	"github.com/jonathan/buffet-strategist/internal/types"
)

// ReasonBudgetExhausted marks dishes dropped because earlier phases consumed
// the remaining calorie or volume budget.
const ReasonBudgetExhausted = "budget exhausted before phase"

// indulgenceCalorieShare caps Indulgence-phase calories for goals other than
// enjoyment_first.
const indulgenceCalorieShare = 0.10

// minIndulgenceScale bounds how far an indulgence portion may be shrunk to
// fit under the cap before the dish is skipped instead.
const minIndulgenceScale = 0.3

const capacityTolerance = 1.05

// Plan assigns each selected dish to a phase, orders items within phases by
// satiety per gram (cheap fullness first), and builds phases in fixed order,
// each consuming the remaining budget. Previously skipped dishes are carried
// into the result's skip list ahead of any new planner skips.
func Plan(selected []optimize.Selection, skipped []types.SkipEntry, goal types.Goal, calorieLimit, capacityML float64) types.StrategyResult {
	groups := make(map[types.PhaseName][]optimize.Selection)
	for _, sel := range selected {
		name := classify(&sel.Dish.Nutrition)
		groups[name] = append(groups[name], sel)
	}
	for _, group := range groups {
		sortBySatietyPerGram(group)
	}

	result := types.StrategyResult{
		Skip: append([]types.SkipEntry{}, skipped...),
	}

	volumeBudget := capacityML * capacityTolerance
	totalCal := 0.0
	totalVol := 0.0
	indulgenceCal := 0.0

	for _, phaseName := range types.PhaseOrder {
		group := groups[phaseName]
		if len(group) == 0 {
			continue
		}

		phase := types.Phase{PhaseName: phaseName}
		for _, sel := range group {
			portion := sel.PortionGrams

			if phaseName == types.PhaseIndulgence && goal != types.GoalEnjoymentFirst {
				allowance := calorieLimit*indulgenceCalorieShare - indulgenceCal
				scaled, ok := capPortion(&sel.Dish, portion, allowance)
				if !ok {
					result.Skip = append(result.Skip, types.SkipEntry{
						Name:   sel.Dish.Name,
						Reason: ReasonBudgetExhausted,
					})
					continue
				}
				portion = scaled
			}

			cal := sel.Dish.Nutrition.CaloriesPer100g * portion / 100.0
			vol := stomach.VolumeML(portion, sel.Dish.Nutrition.DensityClass)
			if totalCal+cal > calorieLimit || totalVol+vol > volumeBudget {
				result.Skip = append(result.Skip, types.SkipEntry{
					Name:   sel.Dish.Name,
					Reason: ReasonBudgetExhausted,
				})
				continue
			}

			phase.Items = append(phase.Items, plannedItem(&sel.Dish, portion))
			totalCal += cal
			totalVol += vol
			if phaseName == types.PhaseIndulgence {
				indulgenceCal += cal
			}
		}

		if len(phase.Items) > 0 {
			result.Phases = append(result.Phases, phase)
		}
	}

	result.TotalCalories = round1(totalCal)
	result.StomachUsedML = round1(totalVol)
	result.FullnessScore = stomach.FullnessScore(totalVol, capacityML)
	return result
}

// classify maps a dish to its phase by density class and tags: volume-filling
// starters first, dessert last.
func classify(n *types.NutritionProfile) types.PhaseName {
	if n.HasTag("soup") || n.HasTag("salad") {
		return types.PhaseStarter
	}
	if n.HasTag("dessert") {
		return types.PhaseIndulgence
	}
	if n.DensityClass == types.DensityLiquid || n.DensityClass == types.DensityFibrous {
		return types.PhaseStarter
	}
	if n.HasTag("protein") || n.HasTag("meat") || n.HasTag("fish") || n.HasTag("egg") || n.ProteinGPer100g > 15 {
		return types.PhaseProtein
	}
	if n.HasTag("grain") || n.HasTag("carbs") {
		return types.PhaseCarbs
	}
	if n.ProteinGPer100g > 10 {
		return types.PhaseProtein
	}
	return types.PhaseCarbs
}

func sortBySatietyPerGram(group []optimize.Selection) {
	sort.SliceStable(group, func(i, j int) bool {
		si := stomach.SatietyPerGram(&group[i].Dish.Nutrition)
		sj := stomach.SatietyPerGram(&group[j].Dish.Nutrition)
		if si != sj {
			return si > sj
		}
		return group[i].Dish.DetectionOrder < group[j].Dish.DetectionOrder
	})
}

// capPortion shrinks an indulgence portion to the remaining calorie
// allowance. It refuses to shrink below the minimum scale.
func capPortion(d *types.ScoredDish, portion, calAllowance float64) (float64, bool) {
	if calAllowance <= 0 {
		return 0, false
	}
	cal := d.Nutrition.CaloriesPer100g * portion / 100.0
	if cal <= calAllowance {
		return portion, true
	}
	scaled := calAllowance / d.Nutrition.CaloriesPer100g * 100.0
	if scaled < portion*minIndulgenceScale {
		return 0, false
	}
	return scaled, true
}

func plannedItem(d *types.ScoredDish, portion float64) types.PlannedItem {
	factor := portion / 100.0
	n := d.Nutrition
	return types.PlannedItem{
		DishName:     d.Name,
		PortionGrams: round1(portion),
		Calories:     round1(n.CaloriesPer100g * factor),
		Protein:      round1(n.ProteinGPer100g * factor),
		Carbs:        round1(n.CarbsGPer100g * factor),
		Fat:          round1(n.FatGPer100g * factor),
		Reason:       itemReason(&n),
	}
}

// itemReason gives a short per-item rationale matching the dominant trait of
// the dish.
func itemReason(n *types.NutritionProfile) string {
	switch {
	case n.HasTag("soup") || n.HasTag("salad"):
		return "volume-fill to increase satiety with low calories"
	case n.ProteinGPer100g > 15:
		return "high protein for satiety"
	case n.GlycemicLoadPer100g < 5:
		return "low glycemic load for steady blood sugar"
	default:
		return "balanced portion for variety"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
