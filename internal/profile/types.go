package profile

// Knowledge levels accepted during onboarding.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Ages is the fixed set of representative ages offered by the four
// age-bracket buttons.
var Ages = []int{15, 22, 30, 40}

// Interests is the fixed interest vocabulary.
var Interests = []string{"oceans", "forests", "energy", "waste", "transport", "food"}

// Profile is the user's demographic and preference data plus progression
// counters. Created only when onboarding completes; lives for the process
// session and is never persisted.
type Profile struct {
	ID             string
	Age            int
	Interests      []string
	KnowledgeLevel string
	LearningStyle  string
	Location       string // empty if permission denied or resolution failed
	Points         int
	Level          int
}

// Habits holds the impact-calculator inputs. Mutable at any time before a
// calculation request.
type Habits struct {
	Transport   string // walk, bike, public, car
	Diet        string // vegan, vegetarian, pescatarian, meat
	EnergyUsage string // low, medium, high
	WasteHabits string // minimal, average, high
}

// Snapshot returns a deep copy. Request builders receive snapshots so an
// in-flight request never observes a concurrent profile update.
func (p *Profile) Snapshot() Profile {
	if p == nil {
		return Profile{}
	}
	cp := *p
	if p.Interests != nil {
		cp.Interests = make([]string, len(p.Interests))
		copy(cp.Interests, p.Interests)
	}
	return cp
}

// Topic returns the user's primary learning topic: the first interest, or
// "climate change" when no interests are set.
func (p Profile) Topic() string {
	if len(p.Interests) > 0 {
		return p.Interests[0]
	}
	return "climate change"
}

// ValidAge reports whether age is one of the representative bracket values.
func ValidAge(age int) bool {
	for _, a := range Ages {
		if a == age {
			return true
		}
	}
	return false
}

// ValidInterest reports whether name is part of the interest vocabulary.
func ValidInterest(name string) bool {
	for _, i := range Interests {
		if i == name {
			return true
		}
	}
	return false
}

// ValidKnowledgeLevel reports whether level is one of the accepted values.
func ValidKnowledgeLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
