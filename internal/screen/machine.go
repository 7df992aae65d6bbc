// Package screen holds the single source of truth for which screen is
// displayed. Transitions are user-triggered only; screens that need data
// register on-enter hooks which the orchestrator uses to fetch content.
package screen

import (
	"fmt"
	"sync"
)

// State names one screen.
type State string

const (
	Welcome      State = "welcome"
	Onboarding   State = "onboarding"
	Dashboard    State = "dashboard"
	Impact       State = "impact"
	WhatIf       State = "whatif"
	LocalActions State = "local-actions"
	LearnGrow    State = "learn-grow"
)

// transitions lists the legal forward moves from each state. Dashboard is
// the hub; every feature screen returns to it via Back.
var transitions = map[State][]State{
	Welcome:      {Onboarding},
	Onboarding:   {Dashboard},
	Dashboard:    {Impact, WhatIf, LocalActions, LearnGrow},
	Impact:       {Dashboard},
	WhatIf:       {Dashboard},
	LocalActions: {Dashboard},
	LearnGrow:    {Dashboard},
}

// Machine tracks the current screen and runs enter hooks on transition.
type Machine struct {
	mu      sync.Mutex
	current State
	hooks   map[State][]func()
}

// NewMachine creates a machine in the welcome state.
func NewMachine() *Machine {
	return &Machine{
		current: Welcome,
		hooks:   make(map[State][]func()),
	}
}

// Current returns the displayed screen.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// OnEnter registers fn to run each time the machine enters state.
func (m *Machine) OnEnter(state State, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[state] = append(m.hooks[state], fn)
}

// Go moves to the given state if the transition is legal, then runs that
// state's enter hooks. Hooks run outside the machine lock so they may read
// the machine.
func (m *Machine) Go(to State) error {
	m.mu.Lock()
	if !legal(m.current, to) {
		from := m.current
		m.mu.Unlock()
		return fmt.Errorf("illegal transition %s -> %s", from, to)
	}
	m.current = to
	hooks := append(([]func())(nil), m.hooks[to]...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return nil
}

// Back returns to the dashboard from any feature screen. It is not
// available on the welcome or onboarding screens.
func (m *Machine) Back() error {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()

	if current == Welcome || current == Onboarding {
		return fmt.Errorf("no back action from %s", current)
	}
	if current == Dashboard {
		return nil
	}
	return m.Go(Dashboard)
}

// Refresh re-runs the enter hooks of the current screen. Used when the
// profile changes while a content screen is already displayed.
func (m *Machine) Refresh() {
	m.mu.Lock()
	hooks := append(([]func())(nil), m.hooks[m.current]...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// LegalFrom returns the legal forward transitions out of state.
func LegalFrom(state State) []State {
	out := make([]State, len(transitions[state]))
	copy(out, transitions[state])
	return out
}

func legal(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
