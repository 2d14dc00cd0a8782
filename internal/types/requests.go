package types

import (
	"github.com/go-playground/validator/v10"
)

// ManualDishInput is a single dish supplied by the manual (no image) path.
type ManualDishInput struct {
	Name           string  `json:"name" validate:"required,min=1"`
	EstimatedGrams float64 `json:"estimated_grams" validate:"required,gte=20,lte=500"`
}

// ManualStrategyRequest is the JSON request body for the manual strategy
// endpoint.
type ManualStrategyRequest struct {
	Dishes         []ManualDishInput `json:"dishes" validate:"required,min=1,dive"`
	Goal           string            `json:"goal,omitempty"`
	CalorieLimit   int               `json:"calorie_limit,omitempty" validate:"omitempty,gte=200,lte=10000"`
	Allergies      []string          `json:"allergies,omitempty"`
	DietaryFilters []string          `json:"dietary_filters,omitempty"`
}

// Validate validates the ManualStrategyRequest using the validator.
func (r *ManualStrategyRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	_, err := ParseGoal(r.Goal)
	return err
}

// DishList converts manual inputs into Dish values with full confidence.
func (r *ManualStrategyRequest) DishList() []Dish {
	dishes := make([]Dish, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		dishes = append(dishes, Dish{
			Name:           d.Name,
			EstimatedGrams: d.EstimatedGrams,
			Confidence:     1.0,
		})
	}
	return dishes
}
