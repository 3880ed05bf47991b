// Package suggest provides recipe suggester implementations: an LLM-backed
// search-and-summarize oracle and a static built-in fallback.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/gpt"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSuggester = (*LLMSuggester)(nil)

const suggestPrompt = `You are a recipe suggester. Given a list of available
ingredients, propose 3 or 4 realistic recipes that use them. Respond ONLY
with JSON of the form:
{"recipes":[{"name":"...","description":"...","steps":{"1":"...","2":"..."}}]}
Each recipe needs a name and numbered steps written as clear spoken
instructions. Include explicit durations (e.g. "simmer for 10 minutes")
in steps that involve waiting.`

// LLMSuggester asks a chat model for recipes matching the ingredients.
type LLMSuggester struct {
	client *gpt.Client
	log    *logger.Logger
}

// NewLLMSuggester creates a model-backed recipe suggester.
func NewLLMSuggester(client *gpt.Client, log *logger.Logger) *LLMSuggester {
	return &LLMSuggester{client: client, log: log}
}

type suggestResponse struct {
	Recipes []domain.RecipeRecord `json:"recipes"`
}

// Suggest returns recipes the model proposed for the ingredients. Records
// with missing or empty steps are dropped as invalid rather than crashing
// a later session start. Garbled model output degrades to an explicit
// empty result; only transport-level failures surface as errors.
func (s *LLMSuggester) Suggest(ctx context.Context, ingredients []string) ([]domain.RecipeRecord, error) {
	messages := []gpt.Message{
		gpt.TextMessage(gpt.RoleSystem, suggestPrompt),
		gpt.TextMessage(gpt.RoleUser, "Available ingredients: "+strings.Join(ingredients, ", ")),
	}

	reply, err := s.client.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: suggester model call failed: %v", domain.ErrUpstream, err)
	}

	raw := gpt.ExtractJSON(reply)
	if raw == "" {
		s.log.Warn("suggest: no JSON in model reply, returning empty result")
		return []domain.RecipeRecord{}, nil
	}

	var resp suggestResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.log.Warn("suggest: unparseable recipe JSON, returning empty result: %v", err)
		return []domain.RecipeRecord{}, nil
	}

	out := make([]domain.RecipeRecord, 0, len(resp.Recipes))
	for _, rec := range resp.Recipes {
		if err := rec.Validate(); err != nil {
			s.log.Warn("suggest: dropping invalid recipe %q: %v", rec.Name, err)
			continue
		}
		out = append(out, rec)
	}

	s.log.Info("suggest: %d usable recipes for %d ingredients", len(out), len(ingredients))
	return out, nil
}
