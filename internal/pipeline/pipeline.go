// Package pipeline provides the high-level orchestration turning a dish list
// into an eating plan: Filter → Map → Optimize → Plan → Explain.
//
// The pipeline is a pure function of its inputs and the loaded reference
// dataset. It holds no mutable shared state, so concurrent invocations are
// safe without locking.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/buffet-strategist/internal/explain"
	"github.com/jonathan/buffet-strategist/internal/filter"
	"github.com/jonathan/buffet-strategist/internal/nutrition"
	"github.com/jonathan/buffet-strategist/internal/optimize"
	"github.com/jonathan/buffet-strategist/internal/stomach"
	"github.com/jonathan/buffet-strategist/internal/strategy"
	"github.com/jonathan/buffet-strategist/internal/types"
)

// Dish weight bounds accepted by the pipeline.
const (
	MinDishGrams = 20.0
	MaxDishGrams = 500.0
)

// DefaultCalorieLimit is applied when a request does not set one.
const DefaultCalorieLimit = 2000.0

// Request carries the validated inputs for one pipeline run.
type Request struct {
	Dishes         []types.Dish
	Goal           types.Goal
	CalorieLimit   float64
	Allergies      []string
	DietaryFilters []string
}

// Orchestrator sequences the pipeline stages. It is stateless across calls
// aside from the shared read-only nutrition dataset behind the mapper.
type Orchestrator struct {
	mapper     *nutrition.Mapper
	capacityML float64
}

// New creates an Orchestrator. A non-positive capacity falls back to the
// default gastric capacity.
func New(mapper *nutrition.Mapper, capacityML float64) *Orchestrator {
	if capacityML <= 0 {
		capacityML = stomach.DefaultCapacityML
	}
	return &Orchestrator{mapper: mapper, capacityML: capacityML}
}

// DatasetVersion exposes the reference dataset version for health reporting.
func (o *Orchestrator) DatasetVersion() string { return o.mapper.DatasetVersion() }

// Run executes a single pipeline pass. It returns a *ValidationError for
// rejectable input; an empty selection is a valid terminal state, not an
// error.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*types.AnalysisResult, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	if req.CalorieLimit <= 0 {
		req.CalorieLimit = DefaultCalorieLimit
	}
	if req.Goal == "" {
		req.Goal = types.GoalEnjoymentFirst
	}

	filtered := filter.Apply(req.Dishes, o.mapper, req.Allergies, req.DietaryFilters)

	mapped, err := o.mapDishes(ctx, filtered.Kept)
	if err != nil {
		return nil, err
	}

	scored, err := optimize.ScoreDishes(mapped, req.Goal)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	selection := optimize.Select(scored, req.Goal, req.CalorieLimit, o.capacityML)

	skips := append(filtered.Skipped, selection.Skipped...)
	plan := strategy.Plan(selection.Selected, skips, req.Goal, req.CalorieLimit, o.capacityML)

	result := &types.AnalysisResult{
		DetectedDishes:    req.Dishes,
		NutritionSummary:  summarizeNutrition(scored),
		StomachSimulation: o.summarizeStomach(scored, selection.Selected),
		Strategy:          plan,
		Explanation:       explain.Narrative(&plan, req.Goal),
		ConfidenceOverall: explain.Confidence(&plan, scored),
	}
	return result, nil
}

// mapDishes attaches nutrition profiles, one goroutine per dish. Lookups are
// pure, so order is restored by index.
func (o *Orchestrator) mapDishes(ctx context.Context, dishes []types.Dish) ([]types.ScoredDish, error) {
	mapped := make([]types.ScoredDish, len(dishes))
	g, _ := errgroup.WithContext(ctx)
	for i, d := range dishes {
		g.Go(func() error {
			profile, conf := o.mapper.Lookup(d.Name)
			mapped[i] = types.ScoredDish{
				Dish:            d,
				Nutrition:       profile,
				MatchConfidence: conf,
				DetectionOrder:  i,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mapped, nil
}

func validate(req *Request) error {
	if len(req.Dishes) == 0 {
		return &ValidationError{Message: "dish list is empty"}
	}
	for _, d := range req.Dishes {
		if d.Name == "" {
			return &ValidationError{Message: "dish with empty name"}
		}
		if d.EstimatedGrams < MinDishGrams || d.EstimatedGrams > MaxDishGrams {
			return &ValidationError{Message: fmt.Sprintf(
				"dish %q: estimated_grams %.0f outside [%.0f,%.0f]",
				d.Name, d.EstimatedGrams, MinDishGrams, MaxDishGrams)}
		}
	}
	if req.Goal != "" {
		if _, err := types.ParseGoal(string(req.Goal)); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}
