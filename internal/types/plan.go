package types

// PhaseName identifies a named stage of the eating plan.
type PhaseName string

const (
	PhaseStarter    PhaseName = "Starter"
	PhaseProtein    PhaseName = "Protein"
	PhaseCarbs      PhaseName = "Carbs"
	PhaseIndulgence PhaseName = "Indulgence"
)

// PhaseOrder is the fixed consumption order of phases.
var PhaseOrder = []PhaseName{PhaseStarter, PhaseProtein, PhaseCarbs, PhaseIndulgence}

// PlannedItem is a single dish scheduled for consumption with a sized portion
// and its derived macros for that portion.
type PlannedItem struct {
	DishName     string  `json:"dish_name"`
	PortionGrams float64 `json:"portion_grams"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Reason       string  `json:"reason,omitempty"`
}

// Phase is an ordered group of planned items eaten together.
type Phase struct {
	PhaseName PhaseName     `json:"phase_name"`
	Items     []PlannedItem `json:"items"`
}

// SkipEntry records a dish excluded from the plan and why.
type SkipEntry struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// StrategyResult is the planner's output: ordered phases, the skip list, and
// plan-level aggregates.
type StrategyResult struct {
	Phases        []Phase     `json:"phases"`
	Skip          []SkipEntry `json:"skip"`
	TotalCalories float64     `json:"total_calories"`
	// FullnessScore is cumulative volume over capacity, clipped to [0,1].
	FullnessScore float64 `json:"fullness_score"`
	// StomachUsedML is the unclipped cumulative volume, kept for diagnostics.
	StomachUsedML float64 `json:"stomach_used_ml"`
}

// NutritionSummary aggregates nutrition across all detected dishes at their
// full estimated portions, before any selection.
type NutritionSummary struct {
	TotalAvailableCalories float64 `json:"total_available_calories"`
	TotalProteinG          float64 `json:"total_protein_g"`
	TotalFatG              float64 `json:"total_fat_g"`
	TotalCarbsG            float64 `json:"total_carbs_g"`
	TotalFiberG            float64 `json:"total_fiber_g"`
	TotalGlycemicLoad      float64 `json:"total_glycemic_load"`
	DishCount              int     `json:"dish_count"`
}

// StomachSimulation summarizes the gastric model over the analyzed dishes.
type StomachSimulation struct {
	CapacityML       float64 `json:"capacity_ml"`
	TotalVolumeML    float64 `json:"total_volume_ml"`
	SelectedVolumeML float64 `json:"selected_volume_ml"`
	AvgSatietyScore  float64 `json:"avg_satiety_score"`
}

// AnalysisResult is the full response assembled by the orchestrator.
type AnalysisResult struct {
	DetectedDishes    []Dish            `json:"detected_dishes"`
	NutritionSummary  NutritionSummary  `json:"nutrition_summary"`
	StomachSimulation StomachSimulation `json:"stomach_simulation"`
	Strategy          StrategyResult    `json:"strategy"`
	Explanation       string            `json:"explanation"`
	ConfidenceOverall float64           `json:"confidence_overall"`
}
