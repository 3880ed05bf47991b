package domain

import (
	"context"
	"time"
)

// SessionStore owns the mapping from session id to Session and is the
// single point of concurrency control. Mutations and reads go through
// closures executed under the session's lock; the closure must not retain
// the *Session after returning. Operations on different ids never block
// each other.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Update(ctx context.Context, id string, fn func(*Session) error) error
	View(ctx context.Context, id string, fn func(*Session)) error
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) ([]string, error)
}

// SessionArchive records a summary of a finished session. Implementations
// can be SQLite, a flat file, or a no-op.
type SessionArchive interface {
	Archive(ctx context.Context, record ArchivedSession) error
}

// ArchivedSession is the durable summary written when a completed session
// is removed from the store.
type ArchivedSession struct {
	ID         string
	RecipeName string
	StepCount  int
	StartedAt  time.Time
	EndedAt    time.Time
}

// IngredientRecognizer classifies the food items visible in an image.
// Implementations wrap an external vision model.
type IngredientRecognizer interface {
	Detect(ctx context.Context, image []byte) ([]string, error)
}

// RecipeSuggester turns a list of available ingredients into candidate
// recipes. Implementations can be LLM-backed, search-backed, or static.
type RecipeSuggester interface {
	Suggest(ctx context.Context, ingredients []string) ([]RecipeRecord, error)
}

// Responder produces the user-facing prose for a step. Implementations can
// be template-based or LLM-powered; the core treats them as pure.
type Responder interface {
	Respond(ctx context.Context, step StepView, aux map[string]string) (string, error)
}
