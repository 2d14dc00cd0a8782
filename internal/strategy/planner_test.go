package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/buffet-strategist/internal/optimize"
	"github.com/jonathan/buffet-strategist/internal/stomach"
	"github.com/jonathan/buffet-strategist/internal/types"
)

func selection(name string, portion float64, order int, n types.NutritionProfile) optimize.Selection {
	return optimize.Selection{
		Dish: types.ScoredDish{
			Dish:            types.Dish{Name: name, EstimatedGrams: portion, Confidence: 1.0},
			Nutrition:       n,
			MatchConfidence: 1.0,
			DetectionOrder:  order,
		},
		PortionGrams: portion,
	}
}

var (
	saladProfile = types.NutritionProfile{
		CaloriesPer100g: 18, ProteinGPer100g: 1.5, CarbsGPer100g: 3.5,
		FiberGPer100g: 1.2, GlycemicLoadPer100g: 2,
		DensityClass: types.DensityFibrous, Tags: []string{"vegetable", "salad"},
	}
	soupProfile = types.NutritionProfile{
		CaloriesPer100g: 45, ProteinGPer100g: 2.5, CarbsGPer100g: 6,
		FiberGPer100g: 1, GlycemicLoadPer100g: 5,
		DensityClass: types.DensityLiquid, Tags: []string{"soup"},
	}
	chickenProfile = types.NutritionProfile{
		CaloriesPer100g: 165, ProteinGPer100g: 31, FatGPer100g: 3.6,
		DensityClass: types.DensityDense, Tags: []string{"meat", "protein"},
	}
	riceProfile = types.NutritionProfile{
		CaloriesPer100g: 130, ProteinGPer100g: 2.7, CarbsGPer100g: 28,
		DensityClass: types.DensityMixed, Tags: []string{"grain", "carbs"},
	}
	cakeProfile = types.NutritionProfile{
		CaloriesPer100g: 350, ProteinGPer100g: 4, CarbsGPer100g: 50,
		FatGPer100g: 15, GlycemicLoadPer100g: 35,
		DensityClass: types.DensityDense, Tags: []string{"dessert"},
	}
)

func TestPlanPhaseAssignmentAndOrder(t *testing.T) {
	selected := []optimize.Selection{
		selection("Mixed Salad", 80, 0, saladProfile),
		selection("Grilled Chicken", 150, 1, chickenProfile),
		selection("Rice", 120, 2, riceProfile),
	}

	res := Plan(selected, nil, types.GoalEnjoymentFirst, 2000, stomach.DefaultCapacityML)

	require.Len(t, res.Phases, 3)
	assert.Equal(t, types.PhaseStarter, res.Phases[0].PhaseName)
	assert.Equal(t, types.PhaseProtein, res.Phases[1].PhaseName)
	assert.Equal(t, types.PhaseCarbs, res.Phases[2].PhaseName)

	assert.Equal(t, "Mixed Salad", res.Phases[0].Items[0].DishName)
	assert.Equal(t, "Grilled Chicken", res.Phases[1].Items[0].DishName)
	assert.Empty(t, res.Skip)

	wantTotal := 18*0.8 + 165*1.5 + 130*1.2
	assert.InDelta(t, wantTotal, res.TotalCalories, 0.2)
}

func TestPlanEmptyPhasesOmitted(t *testing.T) {
	selected := []optimize.Selection{selection("Rice", 120, 0, riceProfile)}
	res := Plan(selected, nil, types.GoalEnjoymentFirst, 2000, stomach.DefaultCapacityML)

	require.Len(t, res.Phases, 1)
	assert.Equal(t, types.PhaseCarbs, res.Phases[0].PhaseName)
}

func TestPlanStarterOrderedBySatietyPerGram(t *testing.T) {
	selected := []optimize.Selection{
		selection("Soup", 200, 0, soupProfile),
		selection("Mixed Salad", 80, 1, saladProfile),
	}
	res := Plan(selected, nil, types.GoalEnjoymentFirst, 2000, stomach.DefaultCapacityML)

	require.Len(t, res.Phases, 1)
	require.Len(t, res.Phases[0].Items, 2)

	first := res.Phases[0].Items[0].DishName
	if stomach.SatietyPerGram(&soupProfile) > stomach.SatietyPerGram(&saladProfile) {
		assert.Equal(t, "Soup", first)
	} else {
		assert.Equal(t, "Mixed Salad", first)
	}
}

func TestPlanIndulgenceCappedForNonEnjoymentGoals(t *testing.T) {
	selected := []optimize.Selection{
		selection("Grilled Chicken", 150, 0, chickenProfile),
		selection("Cake", 150, 1, cakeProfile), // 525 kcal at full portion
	}

	res := Plan(selected, nil, types.GoalFatLoss, 2000, stomach.DefaultCapacityML)

	var indulgence *types.Phase
	for i := range res.Phases {
		if res.Phases[i].PhaseName == types.PhaseIndulgence {
			indulgence = &res.Phases[i]
		}
	}
	require.NotNil(t, indulgence)

	indulgenceCal := 0.0
	for _, item := range indulgence.Items {
		indulgenceCal += item.Calories
	}
	assert.LessOrEqual(t, indulgenceCal, 2000*indulgenceCalorieShare+0.1)
}

func TestPlanIndulgenceUncappedForEnjoyment(t *testing.T) {
	selected := []optimize.Selection{selection("Cake", 150, 0, cakeProfile)}

	res := Plan(selected, nil, types.GoalEnjoymentFirst, 2000, stomach.DefaultCapacityML)

	require.Len(t, res.Phases, 1)
	assert.Equal(t, types.PhaseIndulgence, res.Phases[0].PhaseName)
	assert.InDelta(t, 525.0, res.Phases[0].Items[0].Calories, 0.1)
}

func TestPlanIndulgenceSkippedWhenAllowanceTooSmall(t *testing.T) {
	// 10% of 300 kcal leaves a 30 kcal allowance; even 30% of the cake
	// portion costs far more, so the dish is skipped.
	selected := []optimize.Selection{
		selection("Cake", 150, 0, cakeProfile),
	}

	res := Plan(selected, nil, types.GoalBloodSugar, 300, stomach.DefaultCapacityML)

	assert.Empty(t, res.Phases)
	require.Len(t, res.Skip, 1)
	assert.Equal(t, ReasonBudgetExhausted, res.Skip[0].Reason)
}

func TestPlanCarriesExistingSkips(t *testing.T) {
	prior := []types.SkipEntry{{Name: "Fries", Reason: "exceeds calorie budget"}}
	res := Plan(nil, prior, types.GoalEnjoymentFirst, 2000, stomach.DefaultCapacityML)

	require.Len(t, res.Skip, 1)
	assert.Equal(t, "Fries", res.Skip[0].Name)
	assert.Empty(t, res.Phases)
	assert.Zero(t, res.TotalCalories)
	assert.Zero(t, res.FullnessScore)
}

func TestPlanFullnessMonotonicAndClipped(t *testing.T) {
	selected := []optimize.Selection{
		selection("Soup", 500, 0, soupProfile),
		selection("Mixed Salad", 400, 1, saladProfile),
		selection("Rice", 500, 2, riceProfile),
	}
	res := Plan(selected, nil, types.GoalEnjoymentFirst, 5000, stomach.DefaultCapacityML)

	assert.GreaterOrEqual(t, res.FullnessScore, 0.0)
	assert.LessOrEqual(t, res.FullnessScore, 1.0)
	assert.Greater(t, res.StomachUsedML, 0.0)
}

func TestPlanTotalCaloriesEqualsItemSum(t *testing.T) {
	selected := []optimize.Selection{
		selection("Mixed Salad", 80, 0, saladProfile),
		selection("Grilled Chicken", 150, 1, chickenProfile),
		selection("Rice", 120, 2, riceProfile),
	}
	res := Plan(selected, nil, types.GoalMuscleGain, 2000, stomach.DefaultCapacityML)

	sum := 0.0
	for _, p := range res.Phases {
		for _, item := range p.Items {
			sum += item.Calories
		}
	}
	assert.InDelta(t, sum, res.TotalCalories, 0.01)
}

func TestPlanBudgetCheckIgnoresDisplayRounding(t *testing.T) {
	// Each portion costs 99.95 kcal but displays as 100.0 after rounding.
	// Ten of them fit a 999.5 kcal limit exactly; accumulating the rounded
	// per-item values instead would drop the last dish.
	grain := types.NutritionProfile{
		CaloriesPer100g: 99.95, CarbsGPer100g: 20,
		DensityClass: types.DensityMixed, Tags: []string{"grain", "carbs"},
	}
	var selected []optimize.Selection
	for i := 0; i < 10; i++ {
		selected = append(selected, selection("Pilaf", 100, i, grain))
	}

	res := Plan(selected, nil, types.GoalEnjoymentFirst, 999.5, stomach.DefaultCapacityML)

	assert.Empty(t, res.Skip)
	require.Len(t, res.Phases, 1)
	assert.Len(t, res.Phases[0].Items, 10)
	assert.LessOrEqual(t, res.TotalCalories, 999.5)
}
