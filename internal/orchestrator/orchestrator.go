// Package orchestrator owns the request lifecycle for every feature: it
// builds payloads from profile snapshots, issues the request, gates the
// result through the endpoint validators, and decides between live data and
// fallback content.
//
// Write-like operations (onboarding, impact calculation) fail loudly: their
// results become part of the user's identity, so fabricated data would
// corrupt state. Read-like operations (local actions, learning content)
// degrade silently into deterministic fallback content.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kalambet/ecoquest/internal/ecoapi"
	"github.com/kalambet/ecoquest/internal/fallback"
	"github.com/kalambet/ecoquest/internal/location"
	"github.com/kalambet/ecoquest/internal/profile"
	"github.com/kalambet/ecoquest/internal/screen"
)

// Feature identifies one request pipeline.
type Feature string

const (
	FeatureOnboarding   Feature = "onboarding"
	FeatureImpact       Feature = "impact"
	FeatureWhatIf       Feature = "whatif"
	FeatureLocalActions Feature = "local-actions"
	FeatureLearning     Feature = "learning"
)

// Source tags where a screen's content came from. Once loading completes a
// content screen holds exactly one of live or fallback data, never both and
// never neither.
type Source string

const (
	SourceNone     Source = ""
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Service is the slice of the EcoQuest API the orchestrator needs.
// Implemented by *ecoapi.Client.
type Service interface {
	Onboard(ctx context.Context, req ecoapi.OnboardingRequest) (ecoapi.OnboardingResult, error)
	CalculateImpact(ctx context.Context, req ecoapi.ImpactRequest) (ecoapi.ImpactResult, error)
	WhatIf(ctx context.Context, scenario string) (string, error)
	LocalActions(ctx context.Context, loc string, interests []string) ([]ecoapi.LocalAction, error)
	LearningContent(ctx context.Context, userID, topic string) (ecoapi.LearningContent, error)
}

// OnboardingInput is what the onboarding screen collects.
type OnboardingInput struct {
	Age            int
	Interests      []string
	KnowledgeLevel string
	LearningStyle  string
}

// Orchestrator coordinates the screen machine, the API client, and the
// fallback provider for one user session. All state is in-memory and lives
// for the process.
type Orchestrator struct {
	svc      Service
	machine  *screen.Machine
	resolver *location.Resolver // optional
	log      *slog.Logger
	group    singleflight.Group

	mu       sync.Mutex
	prof     *profile.Profile
	loc      string
	loading  map[Feature]bool
	seq      map[Feature]uint64
	actions  []ecoapi.LocalAction
	actSrc   Source
	lessons  []ecoapi.Lesson
	lessSrc  Source
	habits   profile.Habits
}

// New wires an Orchestrator and attaches the content-fetch effects to the
// screens that need them. Entering local-actions or learn-grow fetches
// exactly once per entry.
func New(svc Service, machine *screen.Machine, resolver *location.Resolver, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	o := &Orchestrator{
		svc:      svc,
		machine:  machine,
		resolver: resolver,
		log:      log,
		loading:  make(map[Feature]bool),
		seq:      make(map[Feature]uint64),
	}
	machine.OnEnter(screen.LocalActions, func() { o.FetchLocalActions(context.Background()) })
	machine.OnEnter(screen.LearnGrow, func() { o.FetchLearningContent(context.Background()) })
	return o
}

// Screen returns the currently displayed state.
func (o *Orchestrator) Screen() screen.State { return o.machine.Current() }

// StartOnboarding moves from the welcome screen to onboarding.
func (o *Orchestrator) StartOnboarding() error {
	return o.machine.Go(screen.Onboarding)
}

// OpenScreen navigates from the dashboard to a feature screen.
func (o *Orchestrator) OpenScreen(s screen.State) error { return o.machine.Go(s) }

// Back returns to the dashboard.
func (o *Orchestrator) Back() error { return o.machine.Back() }

// ResolveLocation performs the best-effort place lookup and remembers the
// result for the onboarding payload. Safe to call without a resolver.
func (o *Orchestrator) ResolveLocation(ctx context.Context) string {
	if o.resolver == nil {
		return ""
	}
	loc := o.resolver.Resolve(ctx)
	o.mu.Lock()
	o.loc = loc
	o.mu.Unlock()
	return loc
}

// CompleteOnboarding validates the collected input, registers the user, and
// on success creates the session profile and moves to the dashboard. Any
// failure is returned to the caller as a blocking error; onboarding never
// silently succeeds with fabricated data.
func (o *Orchestrator) CompleteOnboarding(ctx context.Context, input OnboardingInput) (ecoapi.OnboardingResult, error) {
	if err := validateOnboarding(input); err != nil {
		return ecoapi.OnboardingResult{}, err
	}
	style := input.LearningStyle
	if style == "" {
		style = "mixed"
	}

	o.mu.Lock()
	loc := o.loc
	o.mu.Unlock()

	o.setLoading(FeatureOnboarding, true)
	defer o.setLoading(FeatureOnboarding, false)

	v, err, _ := o.group.Do(string(FeatureOnboarding), func() (any, error) {
		return o.svc.Onboard(ctx, ecoapi.OnboardingRequest{
			Age:            input.Age,
			Interests:      input.Interests,
			KnowledgeLevel: input.KnowledgeLevel,
			LearningStyle:  style,
			Location:       loc,
		})
	})
	if err != nil {
		o.log.Error("onboarding failed", "error", err)
		return ecoapi.OnboardingResult{}, fmt.Errorf("onboarding failed: %w", err)
	}
	result := v.(ecoapi.OnboardingResult)

	o.mu.Lock()
	o.prof = &profile.Profile{
		ID:             result.UserID,
		Age:            input.Age,
		Interests:      append([]string(nil), input.Interests...),
		KnowledgeLevel: input.KnowledgeLevel,
		LearningStyle:  style,
		Location:       loc,
		Points:         100,
		Level:          1,
	}
	o.mu.Unlock()

	o.log.Info("onboarding complete", "user_id", result.UserID)
	if err := o.machine.Go(screen.Dashboard); err != nil {
		return result, err
	}
	return result, nil
}

// CalculateImpact submits the habit inputs and returns the simulated
// footprint. Failures propagate: the result feeds the user's progress, so a
// substituted value would corrupt it.
func (o *Orchestrator) CalculateImpact(ctx context.Context, habits profile.Habits) (ecoapi.ImpactResult, error) {
	o.mu.Lock()
	if o.prof == nil {
		o.mu.Unlock()
		return ecoapi.ImpactResult{}, &PreconditionError{Op: "calculate impact", Reason: "onboarding not completed"}
	}
	userID := o.prof.ID
	o.habits = habits
	o.mu.Unlock()

	o.setLoading(FeatureImpact, true)
	defer o.setLoading(FeatureImpact, false)

	v, err, _ := o.group.Do(string(FeatureImpact), func() (any, error) {
		return o.svc.CalculateImpact(ctx, ecoapi.ImpactRequest{
			UserID:      userID,
			Transport:   habits.Transport,
			Diet:        habits.Diet,
			EnergyUsage: habits.EnergyUsage,
			WasteHabits: habits.WasteHabits,
		})
	})
	if err != nil {
		o.log.Error("impact calculation failed", "error", err)
		return ecoapi.ImpactResult{}, fmt.Errorf("impact calculation failed: %w", err)
	}
	return v.(ecoapi.ImpactResult), nil
}

// ExploreWhatIf narrates a hypothetical scenario. On failure the returned
// paragraphs carry a generic unavailable message and the error is surfaced
// so the render layer can show a notice alongside it.
func (o *Orchestrator) ExploreWhatIf(ctx context.Context, scenario string) ([]string, error) {
	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		return nil, &PreconditionError{Op: "what-if", Reason: "scenario is empty"}
	}

	o.setLoading(FeatureWhatIf, true)
	defer o.setLoading(FeatureWhatIf, false)

	v, err, _ := o.group.Do(string(FeatureWhatIf), func() (any, error) {
		return o.svc.WhatIf(ctx, scenario)
	})
	if err != nil {
		o.log.Warn("what-if generation failed", "error", err)
		return []string{fallback.WhatIfUnavailable}, fmt.Errorf("what-if generation failed: %w", err)
	}
	return SplitParagraphs(v.(string)), nil
}

// FetchLocalActions loads location-specific actions. Without a profile the
// network call is skipped entirely and fallback content is shown
// immediately; with a profile, any failure degrades silently into the same
// fallback. Never returns an error.
func (o *Orchestrator) FetchLocalActions(ctx context.Context) []ecoapi.LocalAction {
	o.setLoading(FeatureLocalActions, true)
	defer o.setLoading(FeatureLocalActions, false)

	o.mu.Lock()
	hasProfile := o.prof != nil
	var snap profile.Profile
	if hasProfile {
		snap = o.prof.Snapshot()
	}
	mySeq := o.nextSeqLocked(FeatureLocalActions)
	o.mu.Unlock()

	if !hasProfile {
		o.log.Debug("no profile, using fallback local actions")
		return o.storeActions(mySeq, fallback.LocalActions(), SourceFallback)
	}

	loc := snap.Location
	if loc == "" {
		loc = "your city"
	}
	interests := snap.Interests
	if len(interests) == 0 {
		interests = []string{"general"}
	}

	v, err, _ := o.group.Do(string(FeatureLocalActions), func() (any, error) {
		return o.svc.LocalActions(ctx, loc, interests)
	})
	if err != nil {
		o.log.Warn("local actions unavailable, using fallback", "error", err)
		return o.storeActions(mySeq, fallback.LocalActions(), SourceFallback)
	}
	return o.storeActions(mySeq, v.([]ecoapi.LocalAction), SourceLive)
}

// FetchLearningContent loads the personalized lesson list. Same degradation
// contract as FetchLocalActions; on success the primary AI lesson is
// extended with lessons synthesized from secondary interests.
func (o *Orchestrator) FetchLearningContent(ctx context.Context) []ecoapi.Lesson {
	o.setLoading(FeatureLearning, true)
	defer o.setLoading(FeatureLearning, false)

	o.mu.Lock()
	hasProfile := o.prof != nil
	var snap profile.Profile
	if hasProfile {
		snap = o.prof.Snapshot()
	}
	mySeq := o.nextSeqLocked(FeatureLearning)
	o.mu.Unlock()

	if !hasProfile {
		o.log.Debug("no profile, using fallback lessons")
		return o.storeLessons(mySeq, fallback.Lessons(profile.LevelBeginner), SourceFallback)
	}

	v, err, _ := o.group.Do(string(FeatureLearning), func() (any, error) {
		return o.svc.LearningContent(ctx, snap.ID, snap.Topic())
	})
	if err != nil {
		o.log.Warn("learning content unavailable, using fallback", "error", err)
		return o.storeLessons(mySeq, fallback.Lessons(snap.KnowledgeLevel), SourceFallback)
	}
	lessons := BuildLessons(v.(ecoapi.LearningContent), snap.Interests, snap.KnowledgeLevel)
	return o.storeLessons(mySeq, lessons, SourceLive)
}

// SetInterests replaces the profile's interests and re-runs the current
// screen's fetch effect when a content screen is displayed.
func (o *Orchestrator) SetInterests(interests []string) error {
	for _, i := range interests {
		if !profile.ValidInterest(i) {
			return fmt.Errorf("unknown interest %q", i)
		}
	}
	if len(interests) == 0 {
		return fmt.Errorf("interests must not be empty")
	}

	o.mu.Lock()
	if o.prof == nil {
		o.mu.Unlock()
		return &PreconditionError{Op: "set interests", Reason: "onboarding not completed"}
	}
	o.prof.Interests = append([]string(nil), interests...)
	o.mu.Unlock()

	o.refreshContentScreen()
	return nil
}

// Profile returns a snapshot of the session profile and whether one exists.
func (o *Orchestrator) Profile() (profile.Profile, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.prof == nil {
		return profile.Profile{}, false
	}
	return o.prof.Snapshot(), true
}

// Habits returns the most recently submitted habit inputs.
func (o *Orchestrator) Habits() profile.Habits {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.habits
}

// Loading reports whether a request for the feature is in flight.
func (o *Orchestrator) Loading(f Feature) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading[f]
}

// LocalActions returns the last loaded actions and their source.
func (o *Orchestrator) LocalActions() ([]ecoapi.LocalAction, Source) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ecoapi.LocalAction(nil), o.actions...), o.actSrc
}

// Lessons returns the last loaded lessons and their source.
func (o *Orchestrator) Lessons() ([]ecoapi.Lesson, Source) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ecoapi.Lesson(nil), o.lessons...), o.lessSrc
}

func (o *Orchestrator) refreshContentScreen() {
	switch o.machine.Current() {
	case screen.LocalActions, screen.LearnGrow:
		o.machine.Refresh()
	}
}

func (o *Orchestrator) setLoading(f Feature, v bool) {
	o.mu.Lock()
	o.loading[f] = v
	o.mu.Unlock()
}

// nextSeqLocked advances the feature's sequence number. A fetch only writes
// its result back if no newer fetch started meanwhile, so a request that
// resolves after the user navigated away and re-entered cannot clobber
// fresher content.
func (o *Orchestrator) nextSeqLocked(f Feature) uint64 {
	o.seq[f]++
	return o.seq[f]
}

func (o *Orchestrator) storeActions(seq uint64, actions []ecoapi.LocalAction, src Source) []ecoapi.LocalAction {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq == o.seq[FeatureLocalActions] {
		o.actions = actions
		o.actSrc = src
	}
	return actions
}

func (o *Orchestrator) storeLessons(seq uint64, lessons []ecoapi.Lesson, src Source) []ecoapi.Lesson {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq == o.seq[FeatureLearning] {
		o.lessons = lessons
		o.lessSrc = src
	}
	return lessons
}

func validateOnboarding(input OnboardingInput) error {
	if !profile.ValidAge(input.Age) {
		return fmt.Errorf("age %d is not one of the offered brackets", input.Age)
	}
	if len(input.Interests) == 0 {
		return fmt.Errorf("at least one interest is required")
	}
	for _, i := range input.Interests {
		if !profile.ValidInterest(i) {
			return fmt.Errorf("unknown interest %q", i)
		}
	}
	if !profile.ValidKnowledgeLevel(input.KnowledgeLevel) {
		return fmt.Errorf("unknown knowledge level %q", input.KnowledgeLevel)
	}
	return nil
}
