package profile

import "testing"

func TestSnapshotIsIndependent(t *testing.T) {
	p := &Profile{
		ID:             "u-1",
		Age:            22,
		Interests:      []string{"oceans", "energy"},
		KnowledgeLevel: LevelIntermediate,
		Points:         100,
		Level:          1,
	}

	snap := p.Snapshot()
	p.Interests[0] = "waste"
	p.Points = 250

	if snap.Interests[0] != "oceans" {
		t.Errorf("snapshot interests mutated: %q", snap.Interests[0])
	}
	if snap.Points != 100 {
		t.Errorf("snapshot points = %d, want 100", snap.Points)
	}
}

func TestSnapshotNil(t *testing.T) {
	var p *Profile
	snap := p.Snapshot()
	if snap.ID != "" || snap.Interests != nil {
		t.Errorf("nil snapshot = %+v, want zero value", snap)
	}
}

func TestTopic(t *testing.T) {
	tests := []struct {
		name      string
		interests []string
		want      string
	}{
		{"first interest", []string{"forests", "oceans"}, "forests"},
		{"no interests", nil, "climate change"},
		{"empty slice", []string{}, "climate change"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{Interests: tt.interests}
			if got := p.Topic(); got != tt.want {
				t.Errorf("Topic() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidAge(t *testing.T) {
	for _, a := range []int{15, 22, 30, 40} {
		if !ValidAge(a) {
			t.Errorf("ValidAge(%d) = false, want true", a)
		}
	}
	for _, a := range []int{0, 18, 25, 99} {
		if ValidAge(a) {
			t.Errorf("ValidAge(%d) = true, want false", a)
		}
	}
}

func TestValidInterest(t *testing.T) {
	if !ValidInterest("waste") {
		t.Error("ValidInterest(waste) = false, want true")
	}
	if ValidInterest("astronomy") {
		t.Error("ValidInterest(astronomy) = true, want false")
	}
}

func TestValidKnowledgeLevel(t *testing.T) {
	for _, l := range []string{LevelBeginner, LevelIntermediate, LevelAdvanced} {
		if !ValidKnowledgeLevel(l) {
			t.Errorf("ValidKnowledgeLevel(%q) = false, want true", l)
		}
	}
	if ValidKnowledgeLevel("expert") {
		t.Error("ValidKnowledgeLevel(expert) = true, want false")
	}
}
