package orchestrator

import (
	"reflect"
	"testing"

	"github.com/kalambet/ecoquest/internal/ecoapi"
	"github.com/kalambet/ecoquest/internal/profile"
)

func TestBuildLessons(t *testing.T) {
	primary := ecoapi.LearningContent{Title: "Why Oceans Matter", Content: "The ocean absorbs heat."}
	interests := []string{"oceans", "forests", "energy", "waste", "food"}

	lessons := BuildLessons(primary, interests, profile.LevelAdvanced)

	if len(lessons) != 4 {
		t.Fatalf("got %d lessons, want primary + 3 extras", len(lessons))
	}
	if lessons[0].Title != "Why Oceans Matter" || lessons[0].Description != "The ocean absorbs heat." {
		t.Errorf("primary = %+v", lessons[0])
	}

	wantTitles := []string{"Forests", "Energy", "Waste"}
	wantDurations := []string{"15 min", "20 min", "25 min"}
	for i, l := range lessons[1:] {
		if l.Title != wantTitles[i] {
			t.Errorf("extra[%d].Title = %q, want %q", i, l.Title, wantTitles[i])
		}
		if l.Duration != wantDurations[i] {
			t.Errorf("extra[%d].Duration = %q, want %q", i, l.Duration, wantDurations[i])
		}
		if l.Difficulty != profile.LevelAdvanced {
			t.Errorf("extra[%d].Difficulty = %q, want advanced", i, l.Difficulty)
		}
	}
}

// Synthesis must be deterministic: identical inputs produce identical output.
func TestSynthesizeLessonsDeterministic(t *testing.T) {
	interests := []string{"oceans", "transport", "food"}
	first := SynthesizeLessons(interests, profile.LevelBeginner)
	second := SynthesizeLessons(interests, profile.LevelBeginner)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("synthesis differs between calls:\n%+v\n%+v", first, second)
	}
}

func TestSynthesizeLessons_SingleInterest(t *testing.T) {
	if got := SynthesizeLessons([]string{"oceans"}, profile.LevelBeginner); got != nil {
		t.Errorf("got %d extras for single interest, want none", len(got))
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two blocks", "Text A\n\nText B", []string{"Text A", "Text B"}},
		{"single block", "Just one.", []string{"Just one."}},
		{"extra blank lines", "A\n\n\n\nB", []string{"A", "B"}},
		{"surrounding whitespace", "  A  \n\n  B  ", []string{"A", "B"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitParagraphs(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
