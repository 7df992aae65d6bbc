package screen

import "testing"

func TestInitialState(t *testing.T) {
	m := NewMachine()
	if m.Current() != Welcome {
		t.Errorf("initial state = %s, want welcome", m.Current())
	}
}

func TestHappyPath(t *testing.T) {
	m := NewMachine()
	steps := []State{Onboarding, Dashboard, Impact, Dashboard, WhatIf, Dashboard}
	for _, s := range steps {
		if err := m.Go(s); err != nil {
			t.Fatalf("Go(%s): %v", s, err)
		}
	}
	if m.Current() != Dashboard {
		t.Errorf("final state = %s, want dashboard", m.Current())
	}
}

func TestIllegalTransitions(t *testing.T) {
	tests := []struct {
		from, to State
	}{
		{Welcome, Dashboard},
		{Welcome, Impact},
		{Onboarding, Impact},
		{Impact, WhatIf},
		{LocalActions, LearnGrow},
	}
	for _, tt := range tests {
		m := machineAt(t, tt.from)
		if err := m.Go(tt.to); err == nil {
			t.Errorf("Go(%s) from %s succeeded, want error", tt.to, tt.from)
		}
		if m.Current() != tt.from {
			t.Errorf("state moved to %s after illegal transition", m.Current())
		}
	}
}

// Back is total: every feature screen returns to the dashboard.
func TestBackAlwaysReachesDashboard(t *testing.T) {
	for _, from := range []State{Dashboard, Impact, WhatIf, LocalActions, LearnGrow} {
		m := machineAt(t, from)
		if err := m.Back(); err != nil {
			t.Errorf("Back() from %s: %v", from, err)
		}
		if m.Current() != Dashboard {
			t.Errorf("Back() from %s landed on %s", from, m.Current())
		}
	}
}

func TestNoBackFromWelcomeOrOnboarding(t *testing.T) {
	for _, from := range []State{Welcome, Onboarding} {
		m := machineAt(t, from)
		if err := m.Back(); err == nil {
			t.Errorf("Back() from %s succeeded, want error", from)
		}
	}
}

// Exactly four forward transitions exist from the dashboard.
func TestDashboardForwardTransitions(t *testing.T) {
	legal := LegalFrom(Dashboard)
	if len(legal) != 4 {
		t.Fatalf("dashboard has %d forward transitions, want 4", len(legal))
	}
	want := map[State]bool{Impact: true, WhatIf: true, LocalActions: true, LearnGrow: true}
	for _, s := range legal {
		if !want[s] {
			t.Errorf("unexpected dashboard transition to %s", s)
		}
	}
}

func TestOnEnterHookRunsPerEntry(t *testing.T) {
	m := NewMachine()
	var entries int
	m.OnEnter(LocalActions, func() { entries++ })

	m.Go(Onboarding)
	m.Go(Dashboard)
	m.Go(LocalActions)
	if entries != 1 {
		t.Fatalf("hook ran %d times after first entry, want 1", entries)
	}

	m.Back()
	m.Go(LocalActions)
	if entries != 2 {
		t.Errorf("hook ran %d times after re-entry, want 2", entries)
	}
}

func TestRefreshReRunsCurrentHooks(t *testing.T) {
	m := NewMachine()
	var learnEntries, actionEntries int
	m.OnEnter(LearnGrow, func() { learnEntries++ })
	m.OnEnter(LocalActions, func() { actionEntries++ })

	m.Go(Onboarding)
	m.Go(Dashboard)
	m.Go(LearnGrow)
	m.Refresh()

	if learnEntries != 2 {
		t.Errorf("learn-grow hook ran %d times, want 2", learnEntries)
	}
	if actionEntries != 0 {
		t.Errorf("local-actions hook ran %d times, want 0", actionEntries)
	}
}

func machineAt(t *testing.T, target State) *Machine {
	t.Helper()
	m := NewMachine()
	var path []State
	switch target {
	case Welcome:
	case Onboarding:
		path = []State{Onboarding}
	case Dashboard:
		path = []State{Onboarding, Dashboard}
	default:
		path = []State{Onboarding, Dashboard, target}
	}
	for _, s := range path {
		if err := m.Go(s); err != nil {
			t.Fatalf("setup Go(%s): %v", s, err)
		}
	}
	return m
}
