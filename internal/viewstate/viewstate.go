// Package viewstate holds the console's UI state as a single immutable
// value updated through a reducer. Every mutation is a typed action; the
// reducer computes the next state without touching the previous one, so
// subscribers can diff snapshots safely.
package viewstate

import (
	"sync"

	"github.com/rh-rosa-lab/rosactl/internal/workflow"
)

// State is a snapshot of the console UI
type State struct {
	// Environment is the name of the selected provisioning environment
	Environment string
	// EnvironmentMenuOpen tracks the environment picker dropdown
	EnvironmentMenuOpen bool

	// Phase mirrors the submission workflow
	Phase workflow.Phase
	// Warnings from the most recent validation, kept across failures
	Warnings []string
	// Errors from the most recent rejected or failed submission
	Errors []string
	// ClusterID of the most recent successful submission
	ClusterID string
	// JobID of the most recent successful submission
	JobID string
}

// Action is a typed state transition request
type Action interface {
	isAction()
}

// SelectEnvironment switches the active provisioning environment and
// resets any in-progress submission state
type SelectEnvironment struct {
	Name string
}

// ToggleEnvironmentMenu opens or closes the environment picker
type ToggleEnvironmentMenu struct{}

// PhaseChanged records a workflow phase transition
type PhaseChanged struct {
	Phase workflow.Phase
}

// SubmissionFinished records the outcome of a submission attempt
type SubmissionFinished struct {
	Result *workflow.Result
}

// Reset returns the submission portion of the state to idle
type Reset struct{}

func (SelectEnvironment) isAction()     {}
func (ToggleEnvironmentMenu) isAction() {}
func (PhaseChanged) isAction()          {}
func (SubmissionFinished) isAction()    {}
func (Reset) isAction()                 {}

// Reduce computes the next state from the previous state and an action.
// It never mutates prev.
func Reduce(prev State, action Action) State {
	next := prev

	switch a := action.(type) {
	case SelectEnvironment:
		next.Environment = a.Name
		next.EnvironmentMenuOpen = false
		next = clearSubmission(next)

	case ToggleEnvironmentMenu:
		next.EnvironmentMenuOpen = !prev.EnvironmentMenuOpen

	case PhaseChanged:
		next.Phase = a.Phase
		if a.Phase == workflow.PhaseValidating {
			// A fresh submission clears the previous outcome
			next.Warnings = nil
			next.Errors = nil
			next.ClusterID = ""
			next.JobID = ""
		}

	case SubmissionFinished:
		next.Warnings = a.Result.Warnings
		next.Errors = a.Result.Errors
		next.ClusterID = a.Result.ClusterID
		next.JobID = a.Result.JobID

	case Reset:
		next = clearSubmission(next)
	}

	return next
}

func clearSubmission(s State) State {
	s.Phase = workflow.PhaseIdle
	s.Warnings = nil
	s.Errors = nil
	s.ClusterID = ""
	s.JobID = ""
	return s
}

// Store serializes dispatches and notifies subscribers with the state
// after each reduction
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []func(State)
}

// NewStore creates a store with the given initial state
func NewStore(initial State) *Store {
	if initial.Phase == "" {
		initial.Phase = workflow.PhaseIdle
	}
	return &Store{state: initial}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action through the reducer and notifies subscribers.
// Subscribers run on the dispatching goroutine.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	subs := make([]func(State), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}

	return next
}

// Subscribe registers fn to run after every dispatch
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
