package ecoapi

import (
	"encoding/json"
	"strings"
)

// Per-endpoint validators. Each takes the raw body of a 2xx response and
// produces either a typed result or a *ValidationError; the response is
// never trusted as-is because the backend assembles it from LLM output.
// Validators do not mutate their input.

// ParseOnboarding fails unless user_id is present and non-empty.
func ParseOnboarding(raw []byte) (OnboardingResult, error) {
	var body struct {
		UserID         string `json:"user_id"`
		WelcomeMessage string `json:"welcome_message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return OnboardingResult{}, &ValidationError{Endpoint: "onboarding", Reason: "malformed JSON"}
	}
	if body.UserID == "" {
		return OnboardingResult{}, &ValidationError{Endpoint: "onboarding", Reason: "missing user_id"}
	}
	return OnboardingResult{UserID: body.UserID, WelcomeMessage: body.WelcomeMessage}, nil
}

// ParseImpact fails unless daily_co2 is present and non-zero. A zero value
// is rejected: the CO2 tables upstream cannot produce an all-zero footprint,
// so zero only ever appears when the field was defaulted.
func ParseImpact(raw []byte) (ImpactResult, error) {
	var body struct {
		DailyCO2       *float64 `json:"daily_co2"`
		WeeklyCO2      float64  `json:"weekly_co2"`
		YearlyCO2      float64  `json:"yearly_co2"`
		Suggestions    []string `json:"suggestions"`
		PositiveImpact string   `json:"positive_impact"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ImpactResult{}, &ValidationError{Endpoint: "calculate-impact", Reason: "malformed JSON"}
	}
	if body.DailyCO2 == nil {
		return ImpactResult{}, &ValidationError{Endpoint: "calculate-impact", Reason: "missing daily_co2"}
	}
	if *body.DailyCO2 == 0 {
		return ImpactResult{}, &ValidationError{Endpoint: "calculate-impact", Reason: "daily_co2 is zero"}
	}
	return ImpactResult{
		DailyCO2:       *body.DailyCO2,
		WeeklyCO2:      body.WeeklyCO2,
		YearlyCO2:      body.YearlyCO2,
		Suggestions:    body.Suggestions,
		PositiveImpact: body.PositiveImpact,
	}, nil
}

// ParseWhatIf fails unless scenario_response is present and non-empty
// after trimming.
func ParseWhatIf(raw []byte) (string, error) {
	var body struct {
		ScenarioResponse string `json:"scenario_response"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &ValidationError{Endpoint: "what-if", Reason: "malformed JSON"}
	}
	text := strings.TrimSpace(body.ScenarioResponse)
	if text == "" {
		return "", &ValidationError{Endpoint: "what-if", Reason: "missing scenario_response"}
	}
	return text, nil
}

// ParseLocalActions fails unless local_actions is present and an array.
// An empty array is valid.
func ParseLocalActions(raw []byte) ([]LocalAction, error) {
	var body struct {
		LocalActions *[]LocalAction `json:"local_actions"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ValidationError{Endpoint: "local-actions", Reason: "malformed JSON"}
	}
	if body.LocalActions == nil {
		return nil, &ValidationError{Endpoint: "local-actions", Reason: "local_actions is not an array"}
	}
	return *body.LocalActions, nil
}

// ParseLearningContent fails if the response carries an explicit error
// field or if learning_content is absent.
func ParseLearningContent(raw []byte) (LearningContent, error) {
	var body struct {
		LearningContent *LearningContent `json:"learning_content"`
		Error           string           `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return LearningContent{}, &ValidationError{Endpoint: "learning-content", Reason: "malformed JSON"}
	}
	if body.Error != "" {
		return LearningContent{}, &ValidationError{Endpoint: "learning-content", Reason: body.Error}
	}
	if body.LearningContent == nil {
		return LearningContent{}, &ValidationError{Endpoint: "learning-content", Reason: "missing learning_content"}
	}
	return *body.LearningContent, nil
}
