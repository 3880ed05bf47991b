package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepSequencerWalk(t *testing.T) {
	seq := NewStepSequencer(map[string]string{"1": "A", "2": "B"})

	view := seq.Current()
	assert.Equal(t, "A", view.Text)
	assert.Equal(t, 1, view.StepNumber)
	assert.False(t, view.IsComplete)

	view = seq.Advance()
	assert.Equal(t, "B", view.Text)
	assert.Equal(t, 2, view.StepNumber)
	assert.False(t, view.IsComplete)

	view = seq.Advance()
	assert.True(t, view.IsComplete)
	assert.Equal(t, CompletionPhrase, view.Text)

	// Advancing past completion is idempotent: no error, no wrap, no
	// step number overflow.
	view = seq.Advance()
	assert.True(t, view.IsComplete)
	assert.Equal(t, 2, view.StepNumber)
}

func TestStepSequencerSortsArbitraryKeys(t *testing.T) {
	// Non-contiguous, out-of-order keys from a sloppy upstream.
	seq := NewStepSequencer(map[string]string{"10": "third", "2": "second", "1": "first"})
	require.Equal(t, 3, seq.Len())

	assert.Equal(t, "first", seq.Current().Text)
	assert.Equal(t, "second", seq.Advance().Text)

	view := seq.Advance()
	assert.Equal(t, "third", view.Text)
	assert.Equal(t, 3, view.StepNumber)
}

func TestStepSequencerIgnoresNonIntegerKeys(t *testing.T) {
	seq := NewStepSequencer(map[string]string{"1": "real", "intro": "junk"})
	assert.Equal(t, 1, seq.Len())
	assert.Equal(t, "real", seq.Current().Text)
}

func TestStepSequencerEmpty(t *testing.T) {
	seq := NewStepSequencer(nil)

	// An empty step list yields immediate completion, not an index error.
	view := seq.Current()
	assert.True(t, view.IsComplete)

	view = seq.Advance()
	assert.True(t, view.IsComplete)
}

func TestSessionCompletionIsOneWay(t *testing.T) {
	s := &Session{
		ID:    "s1",
		Steps: NewStepSequencer(map[string]string{"1": "only step"}),
	}

	assert.False(t, s.Completed)
	s.CurrentStep()
	assert.False(t, s.Completed)

	view := s.AdvanceStep()
	assert.True(t, view.IsComplete)
	assert.True(t, s.Completed)

	// Re-observing keeps it completed.
	s.CurrentStep()
	assert.True(t, s.Completed)
}

func TestRecipeRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     RecipeRecord
		wantErr bool
	}{
		{"valid", RecipeRecord{Name: "Soup", Steps: map[string]string{"1": "boil"}}, false},
		{"no name", RecipeRecord{Steps: map[string]string{"1": "boil"}}, true},
		{"no steps", RecipeRecord{Name: "Soup"}, true},
		{"only junk keys", RecipeRecord{Name: "Soup", Steps: map[string]string{"intro": "hi"}}, true},
		{"junk keys plus real one", RecipeRecord{Name: "Soup", Steps: map[string]string{"intro": "hi", "1": "boil"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
