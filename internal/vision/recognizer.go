// Package vision implements ingredient recognition backed by a multimodal
// chat model. The model is a classification oracle: image bytes in, a JSON
// list of ingredient names out.
package vision

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/gpt"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.IngredientRecognizer = (*Recognizer)(nil)

const detectPrompt = "Look at the image and detect all visible food items. " +
	"Respond ONLY with a JSON list of strings like: " +
	`["chicken", "rice", "vegetables"]`

// Recognizer asks a vision-capable chat model what food an image shows.
type Recognizer struct {
	client *gpt.Client
	log    *logger.Logger
}

// NewRecognizer creates an ingredient recognizer backed by the given client.
func NewRecognizer(client *gpt.Client, log *logger.Logger) *Recognizer {
	return &Recognizer{client: client, log: log}
}

// Detect returns the ingredient names visible in the image. Any reply the
// model gives that does not contain a parseable JSON string list is an
// upstream failure, never a crash.
func (r *Recognizer) Detect(ctx context.Context, image []byte) ([]string, error) {
	reply, err := r.client.Chat(ctx, []gpt.Message{gpt.ImageMessage(detectPrompt, image)})
	if err != nil {
		return nil, fmt.Errorf("%w: vision model call failed: %v", domain.ErrUpstream, err)
	}

	raw := gpt.ExtractJSON(reply)
	if raw == "" {
		r.log.Warn("vision: no JSON in model reply: %s", reply)
		return nil, fmt.Errorf("%w: no ingredient list in model output", domain.ErrUpstream)
	}

	var ingredients []string
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		r.log.Warn("vision: unparseable ingredient list %q: %v", raw, err)
		return nil, fmt.Errorf("%w: malformed ingredient list in model output", domain.ErrUpstream)
	}

	r.log.Info("vision: detected %d ingredients", len(ingredients))
	return ingredients, nil
}
