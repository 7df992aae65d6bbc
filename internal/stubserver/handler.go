// Package stubserver is a local, deterministic stand-in for the EcoQuest
// backend. It implements the same five endpoints with fixed CO2 tables and
// templated text so the client can run fully offline and tests have a live
// target.
package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kalambet/ecoquest/internal/ecoapi"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Daily kg CO2 per habit choice. Unknown values fall back to the worst
// bracket, matching the production service.
var (
	transportCO2 = map[string]float64{"car": 6.5, "bike": 0.0, "walk": 0.0, "public": 2.1}
	dietCO2      = map[string]float64{"meat": 7.2, "vegetarian": 3.8, "vegan": 2.9, "pescatarian": 4.1}
	energyCO2    = map[string]float64{"low": 2.1, "medium": 4.8, "high": 8.2}
	wasteCO2     = map[string]float64{"minimal": 0.8, "average": 2.3, "high": 4.1}
)

// NewHandler builds the stub API router.
func NewHandler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/onboarding", handleOnboarding)
	r.Post("/api/calculate-impact", handleCalculateImpact)
	r.Post("/api/what-if", handleWhatIf)
	r.Post("/api/local-actions", handleLocalActions)
	r.Post("/api/learning-content", handleLearningContent)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	return r
}

func handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var req ecoapi.OnboardingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Interests) == 0 {
		writeError(w, http.StatusBadRequest, "at least one interest is required")
		return
	}

	writeJSON(w, map[string]any{
		"user_id": uuid.New().String(),
		"welcome_message": fmt.Sprintf(
			"Welcome to EcoQuest! Based on your interest in %s, we've created a journey just for you.",
			strings.Join(req.Interests, ", ")),
	})
}

func handleCalculateImpact(w http.ResponseWriter, r *http.Request) {
	var req ecoapi.ImpactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	daily := DailyCO2(req.Transport, req.Diet, req.EnergyUsage, req.WasteHabits)
	writeJSON(w, map[string]any{
		"daily_co2":   daily,
		"weekly_co2":  daily * 7,
		"yearly_co2":  daily * 365,
		"suggestions": Suggestions(req.Transport, req.Diet, req.EnergyUsage, req.WasteHabits),
		"positive_impact": fmt.Sprintf(
			"If 1000 people made the same improvements you can, over %.0f tonnes of CO2 would be saved every year.",
			daily*365/1000),
	})
}

func handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scenario string `json:"scenario"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	scenario := strings.TrimSpace(req.Scenario)
	if scenario == "" {
		writeError(w, http.StatusBadRequest, "scenario is required")
		return
	}

	response := fmt.Sprintf(
		"Imagine it: %s. Cities would change shape around the choice, and the emissions curve would bend within a decade.",
		scenario) +
		"\n\n" +
		"One step you can take today: pick the lowest-carbon option for a single routine trip or meal, and make it a habit."
	writeJSON(w, map[string]string{"scenario_response": response})
}

func handleLocalActions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location  string   `json:"location"`
		Interests []string `json:"interests"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	loc := req.Location
	if loc == "" {
		loc = "your city"
	}

	actions := []ecoapi.LocalAction{
		{
			Title:       fmt.Sprintf("Join a cleanup in %s", loc),
			Description: "Connect with environmental groups in your area for a weekend cleanup.",
			Impact:      "Remove 50+ pieces of litter per hour",
			Difficulty:  "easy",
		},
		{
			Title:       "Start a community garden",
			Description: "Transform unused space into a shared green area.",
			Impact:      "Absorb 40kg CO2 per year per plot",
			Difficulty:  "medium",
		},
		{
			Title:       "Organize a repair café",
			Description: "Fix electronics and clothing instead of replacing them.",
			Impact:      "Divert dozens of items from landfill per event",
			Difficulty:  "medium",
		},
	}
	for _, interest := range req.Interests {
		actions = append(actions, interestAction(loc, interest))
		if len(actions) >= 5 {
			break
		}
	}
	writeJSON(w, map[string]any{"local_actions": actions})
}

// interestAction derives one extra action per interest. Deterministic:
// the same interest always yields the same action.
func interestAction(loc, interest string) ecoapi.LocalAction {
	return ecoapi.LocalAction{
		Title:       fmt.Sprintf("Local %s initiative", interest),
		Description: fmt.Sprintf("Find a group in %s working on %s and volunteer for an afternoon.", loc, interest),
		Impact:      "Grow local capacity for climate action",
		Difficulty:  "easy",
	}
}

func handleLearningContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Topic  string `json:"topic"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	topic := req.Topic
	if topic == "" {
		topic = "climate change"
	}

	writeJSON(w, map[string]any{
		"learning_content": ecoapi.LearningContent{
			Title: fmt.Sprintf("Understanding %s", topic),
			Content: fmt.Sprintf(
				"A focused introduction to %s: what drives it, why it matters for the climate, and the highest-leverage actions available to individuals and communities.",
				topic),
		},
	})
}

// DailyCO2 sums the per-habit daily footprints in kg.
func DailyCO2(transport, diet, energy, waste string) float64 {
	return lookup(transportCO2, transport, 6.5) +
		lookup(dietCO2, diet, 7.2) +
		lookup(energyCO2, energy, 4.8) +
		lookup(wasteCO2, waste, 2.3)
}

// Suggestions returns improvement tips keyed to the highest-impact habits.
func Suggestions(transport, diet, energy, waste string) []string {
	suggestions := []string{}
	if transport == "car" {
		suggestions = append(suggestions, "Try biking or walking for short trips - save 6.5kg CO2/day")
	}
	if diet == "meat" {
		suggestions = append(suggestions, "Reduce meat consumption 2-3 days/week - save up to 3kg CO2/day")
	}
	if energy == "high" {
		suggestions = append(suggestions, "Switch to LED bulbs and unplug devices - save 2-4kg CO2/day")
	}
	if waste == "high" {
		suggestions = append(suggestions, "Start composting and reduce packaging - save 1-2kg CO2/day")
	}
	return suggestions
}

func lookup(table map[string]float64, key string, fallbackVal float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallbackVal
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
