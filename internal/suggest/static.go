package suggest

import (
	"context"
	"strings"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSuggester = (*StaticSuggester)(nil)

// StaticSuggester serves built-in recipes. It backs the CLI walkthrough
// and any deployment without model credentials.
type StaticSuggester struct {
	recipes []domain.RecipeRecord
	log     *logger.Logger
}

// NewStaticSuggester creates a suggester preloaded with built-in recipes.
func NewStaticSuggester(log *logger.Logger) *StaticSuggester {
	return &StaticSuggester{recipes: builtinRecipes(), log: log}
}

// Suggest returns built-in recipes whose name or steps mention any of the
// ingredients; if nothing matches, all built-ins are returned so the
// caller always has something to cook.
func (s *StaticSuggester) Suggest(ctx context.Context, ingredients []string) ([]domain.RecipeRecord, error) {
	var matched []domain.RecipeRecord
	for _, rec := range s.recipes {
		if s.mentionsAny(rec, ingredients) {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		s.log.Debug("static suggest: no ingredient match, returning all %d built-ins", len(s.recipes))
		return append([]domain.RecipeRecord(nil), s.recipes...), nil
	}
	return matched, nil
}

func (s *StaticSuggester) mentionsAny(rec domain.RecipeRecord, ingredients []string) bool {
	haystack := strings.ToLower(rec.Name + " " + rec.Description)
	for _, text := range rec.Steps {
		haystack += " " + strings.ToLower(text)
	}
	for _, ing := range ingredients {
		if ing != "" && strings.Contains(haystack, strings.ToLower(ing)) {
			return true
		}
	}
	return false
}

// builtinRecipes returns the recipes shipped with the binary.
func builtinRecipes() []domain.RecipeRecord {
	return []domain.RecipeRecord{
		{
			Name:        "Baked Feta Pasta",
			Description: "The viral baked feta pasta: roast tomatoes and feta, toss with pasta.",
			Steps: map[string]string{
				"1": "Preheat the oven to 400°F (200°C).",
				"2": "In a baking dish, toss cherry tomatoes with olive oil.",
				"3": "Place a block of feta in the center of the dish and drizzle it with more olive oil.",
				"4": "Put the dish in the oven and bake for 30 minutes until the tomatoes burst.",
				"5": "Meanwhile, cook the pasta until al dente, about 10 minutes. Reserve a cup of pasta water.",
				"6": "Mash the feta and tomatoes together, toss with the drained pasta, and loosen with pasta water as needed.",
			},
		},
		{
			Name:        "Vegetable Stir Fry",
			Description: "Fast, crunchy, and customizable. The key is a screaming hot pan and not overcrowding it.",
			Steps: map[string]string{
				"1": "Prep all vegetables: slice the bell pepper, cut broccoli into florets, julienne the carrot. Everything cut before the pan goes on.",
				"2": "Mix the sauce: soy sauce, sesame oil, and a splash of water. Set aside.",
				"3": "Heat your wok on high until it just starts to smoke, then add oil and swirl to coat.",
				"4": "Add broccoli and carrots first and stir-fry for 2 minutes, then add the peppers for 2 more minutes.",
				"5": "Add garlic and ginger to the center of the pan for a 30-second toast until fragrant, then toss everything together.",
				"6": "Pour the sauce over, toss to coat, and serve immediately over rice.",
			},
		},
	}
}
