// Package fallback provides the deterministic substitute content shown when
// the live service is unavailable or the user has not completed onboarding.
// Output never varies between calls with the same inputs.
package fallback

import (
	"github.com/kalambet/ecoquest/internal/ecoapi"
	"github.com/kalambet/ecoquest/internal/profile"
)

// WhatIfUnavailable replaces the scenario text when generation fails.
const WhatIfUnavailable = "We couldn't generate a response for this scenario right now. Please try again in a moment."

// LocalActions returns the two canned actions used when the live
// local-actions feed is unreachable.
func LocalActions() []ecoapi.LocalAction {
	return []ecoapi.LocalAction{
		{
			Title:       "Community Cleanup",
			Description: "Join a local cleanup in a nearby park, beach, or riverside.",
			Impact:      "Remove 50+ pieces of litter per hour",
			Difficulty:  "easy",
		},
		{
			Title:       "Tree Planting Event",
			Description: "Help a community group plant native trees in your area.",
			Impact:      "Each tree absorbs around 20kg CO2 per year",
			Difficulty:  "medium",
		},
	}
}

// Lessons returns the three canned lessons. Difficulty mirrors the user's
// knowledge level; pass an empty string when no profile exists to get
// beginner lessons.
func Lessons(knowledgeLevel string) []ecoapi.Lesson {
	if !profile.ValidKnowledgeLevel(knowledgeLevel) {
		knowledgeLevel = profile.LevelBeginner
	}
	return []ecoapi.Lesson{
		{
			Title:       "Climate Basics",
			Description: "What greenhouse gases are, where they come from, and why a warming planet changes everything.",
			Duration:    "10 min",
			Difficulty:  knowledgeLevel,
		},
		{
			Title:       "Your Carbon Footprint",
			Description: "How everyday choices in transport, food, and energy add up, and which ones matter most.",
			Duration:    "15 min",
			Difficulty:  knowledgeLevel,
		},
		{
			Title:       "Small Actions, Big Impact",
			Description: "Practical habits you can start this week and the difference they make at community scale.",
			Duration:    "12 min",
			Difficulty:  knowledgeLevel,
		},
	}
}
