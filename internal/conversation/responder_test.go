package conversation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/gpt"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func TestPlainResponder(t *testing.T) {
	r := NewPlainResponder()
	ctx := context.Background()

	msg, err := r.Respond(ctx, domain.StepView{Text: "Chop the onions.", StepNumber: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Step 2: Chop the onions.", msg)

	msg, err = r.Respond(ctx, domain.StepView{Text: domain.CompletionPhrase, IsComplete: true}, nil)
	require.NoError(t, err)
	assert.Contains(t, msg, domain.CompletionPhrase)
}

func TestGPTResponderUsesModelReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Alright, time to chop those onions!"}},
			},
		})
	}))
	defer srv.Close()

	log := logger.New(logger.LevelOff, nil)
	r := NewGPTResponder(gpt.NewClient(srv.URL, "test-key", log), log)

	msg, err := r.Respond(context.Background(), domain.StepView{Text: "Chop the onions.", StepNumber: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alright, time to chop those onions!", msg)
}

func TestGPTResponderFallsBackWhenModelFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := logger.New(logger.LevelOff, nil)
	r := NewGPTResponder(gpt.NewClient(srv.URL, "test-key", log), log)

	msg, err := r.Respond(context.Background(), domain.StepView{Text: "Chop the onions.", StepNumber: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Step 2: Chop the onions.", msg)
}
