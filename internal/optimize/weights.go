// Package optimize scores dishes against a goal profile and selects portions
// under calorie and gastric-capacity constraints.
package optimize

import (
	"fmt"

	"github.com/jonathan/buffet-strategist/internal/types"
)

// Weights is the per-goal weight vector applied to dish attributes. Calorie
// density and glycemic load carry negative weights; lower is better.
type Weights struct {
	CalorieDensity float64
	Protein        float64
	Fiber          float64
	GlycemicLoad   float64
	VarietyBonus   float64
}

// goalWeights is the fixed weight table covering every goal id. Values were
// tuned so each goal's signature nutrient dominates its score.
var goalWeights = map[types.Goal]Weights{
	types.GoalEnjoymentFirst: {
		CalorieDensity: -0.2,
		Protein:        0.5,
		Fiber:          0.5,
		GlycemicLoad:   -0.1,
		VarietyBonus:   5.0,
	},
	types.GoalFatLoss: {
		CalorieDensity: -8.0,
		Protein:        1.0,
		Fiber:          1.0,
		GlycemicLoad:   -0.3,
		VarietyBonus:   2.0,
	},
	types.GoalMuscleGain: {
		CalorieDensity: -1.0,
		Protein:        2.0,
		Fiber:          0.3,
		GlycemicLoad:   -0.1,
		VarietyBonus:   2.0,
	},
	types.GoalBloodSugar: {
		CalorieDensity: -4.0,
		Protein:        0.5,
		Fiber:          1.5,
		GlycemicLoad:   -1.0,
		VarietyBonus:   2.0,
	},
}

func init() {
	if err := validateWeights(); err != nil {
		panic(err)
	}
}

// validateWeights checks the weight table covers all goal ids with sane signs.
func validateWeights() error {
	for _, goal := range types.AllGoals {
		w, ok := goalWeights[goal]
		if !ok {
			return fmt.Errorf("goal weight table is missing goal %q", goal)
		}
		if w.CalorieDensity > 0 || w.GlycemicLoad > 0 {
			return fmt.Errorf("goal %q must penalize calorie density and glycemic load", goal)
		}
		if w.Protein < 0 || w.Fiber < 0 || w.VarietyBonus < 0 {
			return fmt.Errorf("goal %q has a negative positive-signal weight", goal)
		}
	}
	return nil
}

// WeightsFor returns the weight vector for a goal.
func WeightsFor(goal types.Goal) (Weights, error) {
	w, ok := goalWeights[goal]
	if !ok {
		return Weights{}, fmt.Errorf("unknown goal %q", goal)
	}
	return w, nil
}
