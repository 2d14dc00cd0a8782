package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/buffet-strategist/internal/config"
	"github.com/jonathan/buffet-strategist/internal/dataset"
	"github.com/jonathan/buffet-strategist/internal/nutrition"
	"github.com/jonathan/buffet-strategist/internal/observability"
	"github.com/jonathan/buffet-strategist/internal/pipeline"
	"github.com/jonathan/buffet-strategist/internal/types"
	"github.com/jonathan/buffet-strategist/internal/vision"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build an eating plan from a buffet photo or dish list",
	Long:  "Detects dishes from a photo (or reads them from a JSON file), maps them to nutrition profiles, and prints a phased eating plan as JSON.",
	RunE:  runAnalyze,
}

var (
	analyzeImagePath    string
	analyzeDishesPath   string
	analyzeGoal         string
	analyzeCalorieLimit float64
	analyzeAllergies    []string
	analyzeFilters      []string
	analyzeVerbose      bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeImagePath, "image", "i", "", "Path to buffet photo (JPEG)")
	analyzeCmd.Flags().StringVar(&analyzeDishesPath, "dishes", "", "Path to JSON file with dishes (overrides --image)")
	analyzeCmd.Flags().StringVarP(&analyzeGoal, "goal", "g", "", "Dietary goal: enjoyment_first, fat_loss, muscle_gain, blood_sugar")
	analyzeCmd.Flags().Float64Var(&analyzeCalorieLimit, "calorie-limit", 0, "Calorie budget for the plan")
	analyzeCmd.Flags().StringSliceVar(&analyzeAllergies, "allergies", nil, "Allergy terms to exclude (comma-separated)")
	analyzeCmd.Flags().StringSliceVar(&analyzeFilters, "filters", nil, "Dietary filters: vegan, vegetarian, halal (comma-separated)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a formatted plan summary to stderr")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	goal, err := types.ParseGoal(analyzeGoal)
	if err != nil {
		return err
	}

	dishes, err := loadDishes(ctx)
	if err != nil {
		return err
	}

	ds, err := dataset.Load()
	if err != nil {
		return fmt.Errorf("failed to load nutrition dataset: %w", err)
	}

	cfg := config.Defaults()
	cfg.ApplyEnv()

	calorieLimit := analyzeCalorieLimit
	if calorieLimit == 0 {
		calorieLimit = float64(cfg.DefaultCalorieLimit)
	}

	orch := pipeline.New(nutrition.NewMapper(ds), cfg.StomachCapacityML)
	result, err := orch.Run(ctx, pipeline.Request{
		Dishes:         dishes,
		Goal:           goal,
		CalorieLimit:   calorieLimit,
		Allergies:      analyzeAllergies,
		DietaryFilters: analyzeFilters,
	})
	if err != nil {
		return err
	}

	if analyzeVerbose {
		observability.NewPrinter(os.Stderr).PrintResult(result)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// loadDishes resolves the dish list: an explicit JSON file wins, then a
// photo via the vision detector, then the built-in demo list.
func loadDishes(ctx context.Context) ([]types.Dish, error) {
	if analyzeDishesPath != "" {
		data, err := os.ReadFile(analyzeDishesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read dishes file: %w", err)
		}
		var req types.ManualStrategyRequest
		if err := json.Unmarshal(data, &req.Dishes); err != nil {
			return nil, fmt.Errorf("failed to parse dishes file: %w", err)
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return req.DishList(), nil
	}

	if analyzeImagePath == "" {
		fmt.Fprintln(os.Stderr, "No image or dishes file given; using demo dish list")
		return vision.FallbackDishes(), nil
	}

	image, err := os.ReadFile(analyzeImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg := config.Defaults()
	cfg.ApplyEnv()

	var detector vision.Detector
	if cfg.GeminiAPIKey != "" {
		gd, err := vision.NewGeminiDetector(ctx, cfg.GeminiAPIKey, cfg.VisionModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create vision detector: %w", err)
		}
		defer gd.Close()
		detector = gd
	} else {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set; using demo dish list")
	}

	timeout := time.Duration(cfg.VisionTimeoutSeconds) * time.Second
	return vision.DetectWithFallback(ctx, detector, image, timeout), nil
}
