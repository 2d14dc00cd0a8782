// Package explain derives the plan narrative and the aggregate confidence.
package explain

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/buffet-strategist/internal/types"
)

// EmptySelectionExplanation is returned when every dish was filtered or
// skipped. The pipeline still returns a valid result in that case.
const EmptySelectionExplanation = "No suitable dishes were found for your goal and constraints; every item was filtered or skipped."

// goalRationale holds the fixed per-goal closing sentence.
var goalRationale = map[types.Goal]string{
	types.GoalEnjoymentFirst: "Strategy balances satiety with variety for maximum enjoyment.",
	types.GoalFatLoss:        "Strategy favors high-protein, high-fiber, low-calorie-density items.",
	types.GoalMuscleGain:     "Strategy prioritizes protein and moderate carbs for recovery.",
	types.GoalBloodSugar:     "Strategy selects low-glycemic items and pairs carbs with fiber to soften blood sugar spikes.",
}

// phaseIntro holds the fixed per-phase opening templates.
var phaseIntro = map[types.PhaseName]string{
	types.PhaseStarter:    "Start with %s to fill volume cheaply before the heavier plates.",
	types.PhaseProtein:    "Lead with protein (%s) so satiety kicks in early.",
	types.PhaseCarbs:      "Open with %s and keep portions moderate.",
	types.PhaseIndulgence: "Only treats made the cut; enjoy %s slowly.",
}

// Narrative builds the templated explanation from the final phases, skip
// list, and goal.
func Narrative(result *types.StrategyResult, goal types.Goal) string {
	if len(result.Phases) == 0 {
		return EmptySelectionExplanation
	}

	var parts []string

	first := result.Phases[0]
	parts = append(parts, fmt.Sprintf(phaseIntro[first.PhaseName], itemNames(first.Items)))

	for _, phase := range result.Phases[1:] {
		switch phase.PhaseName {
		case types.PhaseProtein:
			parts = append(parts, fmt.Sprintf("Then prioritize protein (%s) for satiety and muscle support.", itemNames(phase.Items)))
		case types.PhaseCarbs:
			parts = append(parts, fmt.Sprintf("Add %s for energy.", itemNames(phase.Items)))
		case types.PhaseIndulgence:
			parts = append(parts, "Save dessert for last; a fuller stomach means smaller treat portions.")
		}
	}

	if len(result.Skip) > 0 {
		parts = append(parts, fmt.Sprintf("Skip or minimize: %s.", skipNames(result.Skip, 5)))
	}

	parts = append(parts, goalRationale[goal])
	return strings.Join(parts, " ")
}

// Confidence aggregates per-dish confidence into an overall score: each
// selected dish's detection confidence times its dataset match confidence,
// weighted by its portion's calorie share. Returns 0 when nothing was
// selected.
func Confidence(result *types.StrategyResult, dishes []types.ScoredDish) float64 {
	if result.TotalCalories <= 0 {
		return 0
	}
	byName := make(map[string]*types.ScoredDish, len(dishes))
	for i := range dishes {
		byName[dishes[i].Name] = &dishes[i]
	}

	weighted := 0.0
	for _, phase := range result.Phases {
		for _, item := range phase.Items {
			d, ok := byName[item.DishName]
			if !ok {
				continue
			}
			share := item.Calories / result.TotalCalories
			weighted += d.Confidence * d.MatchConfidence * share
		}
	}
	return math.Round(weighted*100) / 100
}

func itemNames(items []types.PlannedItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.DishName)
	}
	return strings.Join(names, ", ")
}

func skipNames(skips []types.SkipEntry, limit int) string {
	names := make([]string, 0, limit)
	for i, s := range skips {
		if i == limit {
			break
		}
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
