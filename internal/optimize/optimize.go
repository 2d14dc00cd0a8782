package optimize

import (
	"github.com/jonathan/buffet-strategist/internal/stomach"
	"github.com/jonathan/buffet-strategist/internal/types"
)

// Portion scaling bounds: candidate portions start at the full estimated
// weight and step down by tenths to the minimum scale factor.
const (
	maxScaleStep = 10
	minScaleStep = 3
)

// capacityTolerance allows a small volume overshoot past gastric capacity.
const capacityTolerance = 1.05

// Skip reasons surfaced to callers.
const (
	ReasonExceedsCalorieBudget = "exceeds calorie budget"
	ReasonExceedsCapacity      = "exceeds capacity"
)

// Selection pairs a scored dish with its sized portion.
type Selection struct {
	Dish         types.ScoredDish
	PortionGrams float64
}

// Result is the optimizer's output: selected portions in descending score
// order plus the dishes that could not fit.
type Result struct {
	Selected []Selection
	Skipped  []types.SkipEntry
}

// categoryTags, in precedence order, bucket dishes for the variety bonus.
var categoryTags = []string{
	"soup", "salad", "vegetable", "fruit", "meat", "fish", "egg",
	"legume", "grain", "dairy", "dessert",
}

func primaryCategory(n *types.NutritionProfile) string {
	for _, tag := range categoryTags {
		if n.HasTag(tag) {
			return tag
		}
	}
	return "other"
}

// ScoreDishes computes each dish's goal score as the pure weighted nutrient
// sum. Keeping the variety bonus out of the score preserves the pairwise
// ordering guarantees: for blood_sugar, a lower glycemic load always wins
// between otherwise equal dishes. The input slice must be in detection order;
// it is not mutated.
func ScoreDishes(dishes []types.ScoredDish, goal types.Goal) ([]types.ScoredDish, error) {
	w, err := WeightsFor(goal)
	if err != nil {
		return nil, err
	}

	scored := make([]types.ScoredDish, len(dishes))
	for i, d := range dishes {
		n := d.Nutrition
		d.GoalScore = w.CalorieDensity*n.CalorieDensity() +
			w.Protein*n.ProteinGPer100g +
			w.Fiber*n.FiberGPer100g +
			w.GlycemicLoad*n.GlycemicLoadPer100g
		d.DetectionOrder = i
		scored[i] = d
	}
	return scored, nil
}

// rankScore is the greedy pick criterion: the goal score plus a variety
// bonus that diminishes with each same-category dish already selected.
func rankScore(d *types.ScoredDish, w Weights, picked map[string]int) float64 {
	return d.GoalScore + w.VarietyBonus/float64(1+picked[primaryCategory(&d.Nutrition)])
}

// Select performs the greedy constrained fill. Each round picks the highest
// rankScore among the remaining dishes (ties broken by detection order) and
// gives it the largest portion scale that keeps total calories within the
// limit and cumulative volume within capacity plus tolerance. Dishes that
// cannot fit even at the minimum scale are skipped. The goal must be one
// ScoreDishes accepted; its weights drive the variety bonus.
func Select(scored []types.ScoredDish, goal types.Goal, calorieLimit, capacityML float64) Result {
	w, err := WeightsFor(goal)
	if err != nil {
		w = Weights{}
	}

	remaining := make([]types.ScoredDish, len(scored))
	copy(remaining, scored)

	volumeBudget := capacityML * capacityTolerance
	picked := make(map[string]int)

	var result Result
	totalCal := 0.0
	totalVol := 0.0

	for len(remaining) > 0 {
		best := 0
		bestScore := rankScore(&remaining[0], w, picked)
		for i := 1; i < len(remaining); i++ {
			if s := rankScore(&remaining[i], w, picked); s > bestScore {
				best, bestScore = i, s
			}
		}

		d := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)

		portion, ok := fitPortion(&d, calorieLimit-totalCal, volumeBudget-totalVol)
		if !ok {
			result.Skipped = append(result.Skipped, types.SkipEntry{
				Name:   d.Name,
				Reason: skipReason(&d, calorieLimit-totalCal),
			})
			continue
		}
		totalCal += portionCalories(&d, portion)
		totalVol += stomach.VolumeML(portion, d.Nutrition.DensityClass)
		picked[primaryCategory(&d.Nutrition)]++
		result.Selected = append(result.Selected, Selection{Dish: d, PortionGrams: portion})
	}
	return result
}

// fitPortion returns the largest candidate portion within both remaining
// budgets, stepping the scale factor down from 1.0 to 0.3 by tenths.
func fitPortion(d *types.ScoredDish, calRemaining, volRemaining float64) (float64, bool) {
	for step := maxScaleStep; step >= minScaleStep; step-- {
		portion := d.EstimatedGrams * float64(step) / 10.0
		cal := portionCalories(d, portion)
		vol := stomach.VolumeML(portion, d.Nutrition.DensityClass)
		if cal <= calRemaining && vol <= volRemaining {
			return portion, true
		}
	}
	return 0, false
}

// skipReason names the binding constraint at the minimum scale factor. The
// calorie budget is reported first when both constraints are violated.
func skipReason(d *types.ScoredDish, calRemaining float64) string {
	minPortion := d.EstimatedGrams * float64(minScaleStep) / 10.0
	if portionCalories(d, minPortion) > calRemaining {
		return ReasonExceedsCalorieBudget
	}
	return ReasonExceedsCapacity
}

func portionCalories(d *types.ScoredDish, grams float64) float64 {
	return d.Nutrition.CaloriesPer100g * grams / 100.0
}
