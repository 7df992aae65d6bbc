package orchestrator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kalambet/ecoquest/internal/ecoapi"
)

// maxExtraLessons bounds the lessons synthesized from secondary interests.
const maxExtraLessons = 3

// BuildLessons turns the AI-generated primary content into the full lesson
// list: the primary lesson first, then up to three synthesized from the
// user's secondary interests. Pure and deterministic for identical inputs.
func BuildLessons(primary ecoapi.LearningContent, interests []string, knowledgeLevel string) []ecoapi.Lesson {
	lessons := []ecoapi.Lesson{{
		Title:       primary.Title,
		Description: primary.Content,
		Duration:    "10 min",
		Difficulty:  knowledgeLevel,
	}}
	return append(lessons, SynthesizeLessons(interests, knowledgeLevel)...)
}

// SynthesizeLessons derives extra lessons from secondary interests
// (interests after the first). Titles capitalize the interest name and
// durations grow in 5-minute increments starting at 15.
func SynthesizeLessons(interests []string, knowledgeLevel string) []ecoapi.Lesson {
	if len(interests) < 2 {
		return nil
	}
	secondary := interests[1:]
	if len(secondary) > maxExtraLessons {
		secondary = secondary[:maxExtraLessons]
	}

	lessons := make([]ecoapi.Lesson, 0, len(secondary))
	for i, interest := range secondary {
		lessons = append(lessons, ecoapi.Lesson{
			Title:       capitalize(interest),
			Description: fmt.Sprintf("Discover how %s connects to climate change and what you can do about it.", interest),
			Duration:    fmt.Sprintf("%d min", 15+5*i),
			Difficulty:  knowledgeLevel,
		})
	}
	return lessons
}

// SplitParagraphs breaks scenario text into display-order paragraph blocks
// separated by blank lines.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
