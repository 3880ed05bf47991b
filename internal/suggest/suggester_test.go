package suggest

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

// fakeModel serves a canned chat-completion reply.
func fakeModel(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newLLMSuggester(t *testing.T, srv *httptest.Server) *LLMSuggester {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	client := gpt.NewClient(srv.URL, "test-key", log)
	return NewLLMSuggester(client, log)
}

func TestLLMSuggest(t *testing.T) {
	reply := `{"recipes":[{"name":"Tomato Soup","description":"Simple soup.","steps":{"1":"Chop tomatoes.","2":"Simmer for 10 minutes."}}]}`
	sug := newLLMSuggester(t, fakeModel(t, reply, http.StatusOK))

	recipes, err := sug.Suggest(context.Background(), []string{"tomato", "onion"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Soup", recipes[0].Name)
	assert.Equal(t, "Chop tomatoes.", recipes[0].Steps["1"])
}

func TestLLMSuggestUnwrapsCodeFence(t *testing.T) {
	reply := "```json\n{\"recipes\":[{\"name\":\"Salad\",\"steps\":{\"1\":\"Toss everything.\"}}]}\n```"
	sug := newLLMSuggester(t, fakeModel(t, reply, http.StatusOK))

	recipes, err := sug.Suggest(context.Background(), []string{"lettuce"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Salad", recipes[0].Name)
}

func TestLLMSuggestGarbledReplyIsEmptyNotError(t *testing.T) {
	sug := newLLMSuggester(t, fakeModel(t, "I would love to help you cook!", http.StatusOK))

	recipes, err := sug.Suggest(context.Background(), []string{"rice"})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestLLMSuggestDropsInvalidRecipes(t *testing.T) {
	reply := `{"recipes":[
		{"name":"","steps":{"1":"x"}},
		{"name":"No Steps"},
		{"name":"Good One","steps":{"1":"Do the thing."}}
	]}`
	sug := newLLMSuggester(t, fakeModel(t, reply, http.StatusOK))

	recipes, err := sug.Suggest(context.Background(), []string{"rice"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Good One", recipes[0].Name)
}

func TestLLMSuggestTransportFailure(t *testing.T) {
	sug := newLLMSuggester(t, fakeModel(t, "", http.StatusInternalServerError))

	_, err := sug.Suggest(context.Background(), []string{"rice"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestStaticSuggestMatchesIngredients(t *testing.T) {
	sug := NewStaticSuggester(logger.New(logger.LevelOff, nil))

	recipes, err := sug.Suggest(context.Background(), []string{"feta"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Baked Feta Pasta", recipes[0].Name)
}

func TestStaticSuggestFallsBackToAll(t *testing.T) {
	sug := NewStaticSuggester(logger.New(logger.LevelOff, nil))

	recipes, err := sug.Suggest(context.Background(), []string{"durian"})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}
