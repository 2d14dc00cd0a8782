package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/buffet-strategist/internal/pipeline"
	"github.com/jonathan/buffet-strategist/internal/types"
	"github.com/jonathan/buffet-strategist/internal/vision"
)

// maxUploadBytes bounds the multipart form size for /analyze (8 MiB).
const maxUploadBytes = 8 << 20

// handleAnalyze accepts a buffet photo plus planning parameters and returns
// a full eating plan. The image part is optional: without one the demo dish
// list is analyzed instead.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	var image []byte
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read image: "+err.Error())
			return
		}
	}

	goal, err := types.ParseGoal(r.FormValue("goal"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var calorieLimit float64
	if v := r.FormValue("calorie_limit"); v != "" {
		calorieLimit, err = strconv.ParseFloat(v, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid calorie_limit: "+v)
			return
		}
	}
	if calorieLimit == 0 {
		calorieLimit = s.calorieLimit
	}

	log.Printf("[%s] analyze: image=%dB goal=%s", requestID, len(image), goal)

	dishes := vision.DetectWithFallback(r.Context(), s.detector, image, s.visionTimeout)

	result, err := s.orchestrator.Run(r.Context(), pipeline.Request{
		Dishes:         dishes,
		Goal:           goal,
		CalorieLimit:   calorieLimit,
		Allergies:      splitList(r.FormValue("allergies")),
		DietaryFilters: splitList(r.FormValue("dietary_filters")),
	})
	if err != nil {
		log.Printf("[%s] analyze failed: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleManualStrategy builds an eating plan from a caller-supplied dish
// list, skipping the vision stage entirely.
func (s *Server) handleManualStrategy(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	var req types.ManualStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, _ := types.ParseGoal(req.Goal)

	calorieLimit := float64(req.CalorieLimit)
	if calorieLimit == 0 {
		calorieLimit = s.calorieLimit
	}

	log.Printf("[%s] manual-strategy: dishes=%d goal=%s", requestID, len(req.Dishes), goal)

	result, err := s.orchestrator.Run(r.Context(), pipeline.Request{
		Dishes:         req.DishList(),
		Goal:           goal,
		CalorieLimit:   calorieLimit,
		Allergies:      req.Allergies,
		DietaryFilters: req.DietaryFilters,
	})
	if err != nil {
		log.Printf("[%s] manual-strategy failed: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// splitList parses a comma-separated form value into trimmed entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
