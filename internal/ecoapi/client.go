// Package ecoapi is the HTTP client for the EcoQuest backend. Each feature
// has one method following the same shape: marshal the payload, POST it,
// wrap transport and HTTP-status failures into typed errors, then gate the
// body through the endpoint's validator before returning a typed result.
package ecoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request. The upstream mobile client had no
// timeout at all; a hung request would spin its loading indicator forever.
const DefaultTimeout = 30 * time.Second

// Client communicates with an EcoQuest backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL. A timeout of zero
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// OnboardingRequest is the JSON body for POST /api/onboarding.
type OnboardingRequest struct {
	Age            int      `json:"age"`
	Interests      []string `json:"interests"`
	KnowledgeLevel string   `json:"knowledge_level"`
	LearningStyle  string   `json:"learning_style"`
	Location       string   `json:"location,omitempty"`
}

// OnboardingResult is the validated response to an onboarding request.
type OnboardingResult struct {
	UserID         string
	WelcomeMessage string
}

// ImpactRequest is the JSON body for POST /api/calculate-impact.
type ImpactRequest struct {
	UserID      string `json:"user_id"`
	Transport   string `json:"transport"`
	Diet        string `json:"diet"`
	EnergyUsage string `json:"energy_usage"`
	WasteHabits string `json:"waste_habits"`
}

// ImpactResult is a validated carbon-footprint simulation, in kg CO2.
type ImpactResult struct {
	DailyCO2       float64
	WeeklyCO2      float64
	YearlyCO2      float64
	Suggestions    []string
	PositiveImpact string
}

// LocalAction is one recommended environmental action. Live and fallback
// sources both satisfy this shape.
type LocalAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Difficulty  string `json:"difficulty"`
}

// Lesson is one learning unit shown on the learn-and-grow screen.
type Lesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
}

// LearningContent is the AI-generated primary lesson material.
type LearningContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type whatIfRequest struct {
	Scenario string `json:"scenario"`
}

type localActionsRequest struct {
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}

type learningRequest struct {
	UserID string `json:"user_id"`
	Topic  string `json:"topic"`
}

// Onboard registers a new user and returns the backend-assigned identity.
func (c *Client) Onboard(ctx context.Context, req OnboardingRequest) (OnboardingResult, error) {
	raw, err := c.post(ctx, "/api/onboarding", req)
	if err != nil {
		return OnboardingResult{}, err
	}
	return ParseOnboarding(raw)
}

// CalculateImpact submits the user's habits and returns the simulated
// footprint.
func (c *Client) CalculateImpact(ctx context.Context, req ImpactRequest) (ImpactResult, error) {
	raw, err := c.post(ctx, "/api/calculate-impact", req)
	if err != nil {
		return ImpactResult{}, err
	}
	return ParseImpact(raw)
}

// WhatIf asks the service to narrate a hypothetical climate scenario.
func (c *Client) WhatIf(ctx context.Context, scenario string) (string, error) {
	raw, err := c.post(ctx, "/api/what-if", whatIfRequest{Scenario: scenario})
	if err != nil {
		return "", err
	}
	return ParseWhatIf(raw)
}

// LocalActions fetches location-specific environmental actions.
func (c *Client) LocalActions(ctx context.Context, location string, interests []string) ([]LocalAction, error) {
	raw, err := c.post(ctx, "/api/local-actions", localActionsRequest{
		Location:  location,
		Interests: interests,
	})
	if err != nil {
		return nil, err
	}
	return ParseLocalActions(raw)
}

// LearningContent fetches personalized lesson material for a topic.
func (c *Client) LearningContent(ctx context.Context, userID, topic string) (LearningContent, error) {
	raw, err := c.post(ctx, "/api/learning-content", learningRequest{
		UserID: userID,
		Topic:  topic,
	})
	if err != nil {
		return LearningContent{}, err
	}
	return ParseLearningContent(raw)
}

// post issues a JSON POST and returns the raw response body. Network
// failures come back as *TransportError, non-2xx statuses as *HTTPError
// carrying the body text.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}
