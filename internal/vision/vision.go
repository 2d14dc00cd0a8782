// Package vision detects dishes in buffet images. It is the only I/O-bound
// collaborator; the orchestrator boundary wraps it with a timeout and falls
// back to a fixed demo dish list so the pipeline always produces a result.
package vision

import (
	"context"
	"time"

	"github.com/jonathan/buffet-strategist/internal/types"
)

// DefaultTimeout bounds a single detection call.
const DefaultTimeout = 15 * time.Second

// maxDetectedDishes caps how many dishes a single image may produce.
const maxDetectedDishes = 20

// Detector turns image bytes into a dish list.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]types.Dish, error)
}

// DetectWithFallback runs the detector under a timeout. On timeout, error, or
// an empty detection it substitutes the fallback dish list; the pipeline
// never sees an upstream detection failure.
func DetectWithFallback(ctx context.Context, d Detector, image []byte, timeout time.Duration) []types.Dish {
	if d == nil {
		return FallbackDishes()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dishes, err := d.Detect(ctx, image)
	if err != nil || len(dishes) == 0 {
		return FallbackDishes()
	}
	return dishes
}

// FallbackDishes is the fixed demo buffet used when no detector is available
// or detection fails.
func FallbackDishes() []types.Dish {
	return []types.Dish{
		{Name: "Mixed Salad", EstimatedGrams: 80, Confidence: 0.7},
		{Name: "Grilled Chicken", EstimatedGrams: 150, Confidence: 0.7},
		{Name: "Roasted Vegetables", EstimatedGrams: 100, Confidence: 0.7},
		{Name: "Rice", EstimatedGrams: 120, Confidence: 0.7},
		{Name: "Bread Roll", EstimatedGrams: 50, Confidence: 0.7},
		{Name: "Soup", EstimatedGrams: 200, Confidence: 0.7},
		{Name: "Pasta", EstimatedGrams: 150, Confidence: 0.7},
		{Name: "Dessert", EstimatedGrams: 80, Confidence: 0.6},
	}
}

// clampDishes enforces the per-image cap and the accepted weight range.
func clampDishes(dishes []types.Dish) []types.Dish {
	if len(dishes) > maxDetectedDishes {
		dishes = dishes[:maxDetectedDishes]
	}
	out := dishes[:0]
	for _, d := range dishes {
		if d.Name == "" {
			continue
		}
		if d.EstimatedGrams < 20 {
			d.EstimatedGrams = 20
		}
		if d.EstimatedGrams > 500 {
			d.EstimatedGrams = 500
		}
		if d.Confidence <= 0 || d.Confidence > 1 {
			d.Confidence = 0.9
		}
		out = append(out, d)
	}
	return out
}
