package stubserver

import (
	"context"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/kalambet/ecoquest/internal/ecoapi"
)

// The stub is exercised through the real client so both sides of the wire
// contract are covered.
func newClient(t *testing.T) *ecoapi.Client {
	t.Helper()
	srv := httptest.NewServer(NewHandler())
	t.Cleanup(srv.Close)
	return ecoapi.New(srv.URL, 0)
}

func TestOnboardingAssignsUserID(t *testing.T) {
	c := newClient(t)
	result, err := c.Onboard(context.Background(), ecoapi.OnboardingRequest{
		Age:            22,
		Interests:      []string{"oceans", "energy"},
		KnowledgeLevel: "beginner",
		LearningStyle:  "mixed",
	})
	if err != nil {
		t.Fatalf("Onboard: %v", err)
	}
	if result.UserID == "" {
		t.Error("empty user_id")
	}
	if result.WelcomeMessage == "" {
		t.Error("empty welcome_message")
	}
}

func TestOnboardingRejectsEmptyInterests(t *testing.T) {
	c := newClient(t)
	_, err := c.Onboard(context.Background(), ecoapi.OnboardingRequest{Age: 22, KnowledgeLevel: "beginner"})
	if err == nil {
		t.Error("expected error for empty interests")
	}
}

func TestDailyCO2(t *testing.T) {
	tests := []struct {
		name                           string
		transport, diet, energy, waste string
		want                           float64
	}{
		{"worst case", "car", "meat", "high", "high", 6.5 + 7.2 + 8.2 + 4.1},
		{"best case", "walk", "vegan", "low", "minimal", 0 + 2.9 + 2.1 + 0.8},
		{"mixed", "public", "vegetarian", "medium", "average", 2.1 + 3.8 + 4.8 + 2.3},
		{"unknown values use defaults", "teleport", "air", "", "", 6.5 + 7.2 + 4.8 + 2.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyCO2(tt.transport, tt.diet, tt.energy, tt.waste)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DailyCO2 = %v, want %v", got, tt.want)
			}
		})
	}
}

// Even the greenest habit combination stays above zero, which is what lets
// the client reject a zero daily_co2 as invalid.
func TestDailyCO2NeverZero(t *testing.T) {
	if got := DailyCO2("walk", "vegan", "low", "minimal"); got <= 0 {
		t.Errorf("minimum footprint = %v, want > 0", got)
	}
}

func TestCalculateImpactRoundTrip(t *testing.T) {
	c := newClient(t)
	result, err := c.CalculateImpact(context.Background(), ecoapi.ImpactRequest{
		UserID: "u-1", Transport: "car", Diet: "meat", EnergyUsage: "medium", WasteHabits: "average",
	})
	if err != nil {
		t.Fatalf("CalculateImpact: %v", err)
	}

	wantDaily := 6.5 + 7.2 + 4.8 + 2.3
	if math.Abs(result.DailyCO2-wantDaily) > 1e-9 {
		t.Errorf("DailyCO2 = %v, want %v", result.DailyCO2, wantDaily)
	}
	if math.Abs(result.WeeklyCO2-wantDaily*7) > 1e-9 {
		t.Errorf("WeeklyCO2 = %v, want %v", result.WeeklyCO2, wantDaily*7)
	}
	if len(result.Suggestions) != 2 {
		t.Errorf("got %d suggestions for car+meat, want 2", len(result.Suggestions))
	}
	if result.PositiveImpact == "" {
		t.Error("empty positive_impact")
	}
}

func TestCalculateImpactRequiresUserID(t *testing.T) {
	c := newClient(t)
	if _, err := c.CalculateImpact(context.Background(), ecoapi.ImpactRequest{Transport: "car"}); err == nil {
		t.Error("expected error for missing user_id")
	}
}

func TestWhatIfIsTwoParagraphs(t *testing.T) {
	c := newClient(t)
	text, err := c.WhatIf(context.Background(), "What if all cars were electric?")
	if err != nil {
		t.Fatalf("WhatIf: %v", err)
	}

	first, errAgain := c.WhatIf(context.Background(), "What if all cars were electric?")
	if errAgain != nil {
		t.Fatalf("WhatIf (second): %v", errAgain)
	}
	if text != first {
		t.Error("what-if response varies for identical input")
	}
}

func TestLocalActionsShape(t *testing.T) {
	c := newClient(t)
	actions, err := c.LocalActions(context.Background(), "Porto, Portugal", []string{"oceans", "waste"})
	if err != nil {
		t.Fatalf("LocalActions: %v", err)
	}
	if len(actions) != 5 {
		t.Fatalf("got %d actions, want 5", len(actions))
	}
	for i, a := range actions {
		if a.Title == "" || a.Description == "" || a.Impact == "" || a.Difficulty == "" {
			t.Errorf("actions[%d] has empty fields: %+v", i, a)
		}
	}
}

func TestLearningContentShape(t *testing.T) {
	c := newClient(t)
	lc, err := c.LearningContent(context.Background(), "u-1", "forests")
	if err != nil {
		t.Fatalf("LearningContent: %v", err)
	}
	if lc.Title != "Understanding forests" {
		t.Errorf("Title = %q", lc.Title)
	}
	if lc.Content == "" {
		t.Error("empty content")
	}
}
