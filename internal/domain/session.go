package domain

import "time"

// Session is one user's in-progress walkthrough of a single recipe. All
// mutable fields are owned by the SessionStore; callers reach them only
// through the store's Update/View closures so concurrency control stays in
// one place.
type Session struct {
	ID         string
	RecipeName string
	Steps      *StepSequencer
	Timer      *TimerState // nil until a timer is first started
	Completed  bool
	Aux        map[string]string // declared extension map for auxiliary state
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// CurrentStep returns the step under the cursor. Observing a finished
// sequencer marks the session completed as a side effect; completion is a
// one-way transition.
func (s *Session) CurrentStep() StepView {
	view := s.Steps.Current()
	if view.IsComplete {
		s.Completed = true
	}
	return view
}

// AdvanceStep moves the cursor forward and returns the new step view.
// Advancing a finished session is a no-op beyond re-observing completion.
func (s *Session) AdvanceStep() StepView {
	view := s.Steps.Advance()
	if view.IsComplete {
		s.Completed = true
	}
	return view
}

// SetAux records an auxiliary key/value on the session.
func (s *Session) SetAux(key, value string) {
	if s.Aux == nil {
		s.Aux = make(map[string]string)
	}
	s.Aux[key] = value
}
