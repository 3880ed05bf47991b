package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/gpt"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func fakeModel(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The recognizer must send the image as a data URI, not raw bytes.
		var payload struct {
			Messages []struct {
				Content []struct {
					Type     string `json:"type"`
					ImageURL *struct {
						URL string `json:"url"`
					} `json:"image_url"`
				} `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NotEmpty(t, payload.Messages)
		foundImage := false
		for _, c := range payload.Messages[0].Content {
			if c.Type == "image_url" && c.ImageURL != nil {
				assert.True(t, strings.HasPrefix(c.ImageURL.URL, "data:image/jpeg;base64,"))
				foundImage = true
			}
		}
		assert.True(t, foundImage)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRecognizer(t *testing.T, srv *httptest.Server) *Recognizer {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return NewRecognizer(gpt.NewClient(srv.URL, "test-key", log), log)
}

func TestDetect(t *testing.T) {
	rec := newRecognizer(t, fakeModel(t, `["chicken", "rice", "broccoli"]`))

	items, err := rec.Detect(context.Background(), []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken", "rice", "broccoli"}, items)
}

func TestDetectUnwrapsCodeFence(t *testing.T) {
	rec := newRecognizer(t, fakeModel(t, "```json\n[\"feta\", \"tomato\"]\n```"))

	items, err := rec.Detect(context.Background(), []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.Equal(t, []string{"feta", "tomato"}, items)
}

func TestDetectNoJSONIsUpstreamError(t *testing.T) {
	rec := newRecognizer(t, fakeModel(t, "That looks like a lovely kitchen."))

	_, err := rec.Detect(context.Background(), []byte{0xFF, 0xD8})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDetectMalformedListIsUpstreamError(t *testing.T) {
	rec := newRecognizer(t, fakeModel(t, `{"not": "a list"}`))

	_, err := rec.Detect(context.Background(), []byte{0xFF, 0xD8})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
