package domain

import (
	"sort"
	"strconv"
)

// CompletionPhrase is the sentinel step text returned once the last step
// has been passed.
const CompletionPhrase = "The recipe is finished."

// StepView is the observable state of the current step.
type StepView struct {
	Text       string
	StepNumber int // 1-based; equals the step count once complete
	IsComplete bool
}

// StepSequencer walks the ordered steps of one recipe. Step positions are
// derived by sorting the integer-like keys of the supplied map, so
// non-contiguous or out-of-order upstream data is tolerated; keys that do
// not parse as integers are ignored. The cursor only moves forward.
//
// StepSequencer is not safe for concurrent use on its own; the session
// store serializes access per session.
type StepSequencer struct {
	keys  []int
	steps map[int]string
	index int
}

// NewStepSequencer builds a sequencer from a string-keyed step map.
func NewStepSequencer(steps map[string]string) *StepSequencer {
	s := &StepSequencer{steps: make(map[int]string, len(steps))}
	for k, text := range steps {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		s.steps[n] = text
		s.keys = append(s.keys, n)
	}
	sort.Ints(s.keys)
	return s
}

// Len returns the number of usable steps.
func (s *StepSequencer) Len() int { return len(s.keys) }

// Done reports whether the cursor has moved past the last step. An empty
// sequencer is done from the start.
func (s *StepSequencer) Done() bool { return s.index >= len(s.keys) }

// Current returns the step under the cursor. Once the cursor is past the
// last step (or the sequencer is empty) it returns the completion sentinel.
func (s *StepSequencer) Current() StepView {
	if s.Done() {
		return StepView{
			Text:       CompletionPhrase,
			StepNumber: len(s.keys),
			IsComplete: true,
		}
	}
	return StepView{
		Text:       s.steps[s.keys[s.index]],
		StepNumber: s.index + 1,
	}
}

// Advance moves the cursor forward one step and returns the new view.
// Advancing past the end is idempotent: the cursor parks one past the last
// step and never wraps or overflows.
func (s *StepSequencer) Advance() StepView {
	if s.index < len(s.keys) {
		s.index++
	}
	return s.Current()
}
