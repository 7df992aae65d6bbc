package fallback

import (
	"reflect"
	"testing"

	"github.com/kalambet/ecoquest/internal/profile"
)

func TestLocalActionsDeterministic(t *testing.T) {
	first := LocalActions()
	second := LocalActions()
	if !reflect.DeepEqual(first, second) {
		t.Error("LocalActions() output varies between calls")
	}

	if len(first) != 2 {
		t.Fatalf("got %d actions, want 2", len(first))
	}
	if first[0].Title != "Community Cleanup" || first[0].Difficulty != "easy" {
		t.Errorf("actions[0] = %+v", first[0])
	}
	if first[1].Title != "Tree Planting Event" || first[1].Difficulty != "medium" {
		t.Errorf("actions[1] = %+v", first[1])
	}
}

func TestLessonsMirrorKnowledgeLevel(t *testing.T) {
	lessons := Lessons(profile.LevelAdvanced)
	if len(lessons) != 3 {
		t.Fatalf("got %d lessons, want 3", len(lessons))
	}
	for i, l := range lessons {
		if l.Difficulty != profile.LevelAdvanced {
			t.Errorf("lessons[%d].Difficulty = %q, want advanced", i, l.Difficulty)
		}
	}
}

func TestLessonsDefaultToBeginner(t *testing.T) {
	for _, level := range []string{"", "expert"} {
		for _, l := range Lessons(level) {
			if l.Difficulty != profile.LevelBeginner {
				t.Errorf("Lessons(%q) difficulty = %q, want beginner", level, l.Difficulty)
			}
		}
	}
}
