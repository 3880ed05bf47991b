// Package engine implements the cooking session service: it composes the
// step sequencer, the lazy timer, and the session store into the fixed
// operation set any transport (HTTP, CLI, tests) calls deterministically.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/duration"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the wall-clock source. Used by tests to simulate
// elapsed time without sleeping.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithArchive enables archiving of completed sessions on removal.
func WithArchive(archive domain.SessionArchive) Option {
	return func(e *Engine) { e.archive = archive }
}

// WithRecognizer wires the external ingredient recognizer.
func WithRecognizer(r domain.IngredientRecognizer) Option {
	return func(e *Engine) { e.recognizer = r }
}

// WithSuggester wires the external recipe suggester.
func WithSuggester(s domain.RecipeSuggester) Option {
	return func(e *Engine) { e.suggester = s }
}

// Engine manages cooking sessions. It depends only on interfaces and is
// fully testable without a server or a real clock.
type Engine struct {
	store      domain.SessionStore
	parser     *duration.Parser
	archive    domain.SessionArchive
	recognizer domain.IngredientRecognizer
	suggester  domain.RecipeSuggester
	log        *logger.Logger
	now        func() time.Time
}

// New creates a cooking engine with the given dependencies and options.
func New(store domain.SessionStore, parser *duration.Parser, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		parser: parser,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartResult is the observable state right after a session starts.
type StartResult struct {
	SessionID    string
	RecipeName   string
	StepText     string
	StepNumber   int
	HasTimerHint bool
}

// StartSession creates a session from a recipe record and returns the
// first step. Records that fail validation never create any state.
func (e *Engine) StartSession(ctx context.Context, rec domain.RecipeRecord) (*StartResult, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	now := e.now()
	session := &domain.Session{
		ID:         generateID(),
		RecipeName: rec.Name,
		Steps:      domain.NewStepSequencer(rec.Steps),
		StartedAt:  now,
		UpdatedAt:  now,
	}

	if err := e.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	view := session.CurrentStep()
	_, hint := e.parser.Parse(view.Text)

	e.log.Info("started session %s for recipe %q (%d steps)", session.ID, rec.Name, session.Steps.Len())
	return &StartResult{
		SessionID:    session.ID,
		RecipeName:   rec.Name,
		StepText:     view.Text,
		StepNumber:   view.StepNumber,
		HasTimerHint: hint,
	}, nil
}

// StepResult is the observable state of the current step.
type StepResult struct {
	StepText     string
	StepNumber   int
	IsComplete   bool
	HasTimerHint bool
}

// Advance moves the session to the next step and returns it. Advancing a
// finished session is idempotent and keeps reporting completion.
func (e *Engine) Advance(ctx context.Context, sessionID string) (*StepResult, error) {
	var out StepResult
	err := e.store.Update(ctx, sessionID, func(s *domain.Session) error {
		view := s.AdvanceStep()
		s.UpdatedAt = e.now()
		out = e.stepResult(view)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Debug("session %s advanced to step %d (complete=%t)", sessionID, out.StepNumber, out.IsComplete)
	return &out, nil
}

// CurrentStep returns the current step without moving the cursor.
func (e *Engine) CurrentStep(ctx context.Context, sessionID string) (*StepResult, error) {
	var out StepResult
	err := e.store.Update(ctx, sessionID, func(s *domain.Session) error {
		out = e.stepResult(s.CurrentStep())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *Engine) stepResult(view domain.StepView) StepResult {
	hint := false
	if !view.IsComplete {
		_, hint = e.parser.Parse(view.Text)
	}
	return StepResult{
		StepText:     view.Text,
		StepNumber:   view.StepNumber,
		IsComplete:   view.IsComplete,
		HasTimerHint: hint,
	}
}

// TimerResult reports the duration a timer was started with.
type TimerResult struct {
	DurationSeconds int
}

// StartTimerForCurrentStep re-parses the current step text and starts a
// timer for the duration it names. The text is parsed fresh on every call
// rather than cached at advance time. Starting over a running timer
// overwrites it. Returns ErrNoDuration when the step names no wait, so
// callers can fall back to SetCustomTimer.
func (e *Engine) StartTimerForCurrentStep(ctx context.Context, sessionID string) (*TimerResult, error) {
	var out TimerResult
	err := e.store.Update(ctx, sessionID, func(s *domain.Session) error {
		view := s.CurrentStep()
		if view.IsComplete {
			return &domain.ValidationError{Field: "session", Reason: "recipe is already finished"}
		}

		match, ok := e.parser.Parse(view.Text)
		if !ok {
			return domain.ErrNoDuration
		}

		timer, err := domain.StartTimer(match.Seconds, e.now())
		if err != nil {
			return err
		}
		s.Timer = timer
		s.UpdatedAt = e.now()
		out.DurationSeconds = match.Seconds
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("session %s: timer started for %d seconds", sessionID, out.DurationSeconds)
	return &out, nil
}

// SetCustomTimer parses a user-supplied duration ("30 sec", "5 min", a
// bare number) with the loose table and starts a timer for it. Returns
// ErrUnparseable when the text yields nothing.
func (e *Engine) SetCustomTimer(ctx context.Context, sessionID, userText string) (*TimerResult, error) {
	var out TimerResult
	err := e.store.Update(ctx, sessionID, func(s *domain.Session) error {
		match, ok := e.parser.ParseLoose(userText)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnparseable, userText)
		}

		timer, err := domain.StartTimer(match.Seconds, e.now())
		if err != nil {
			return err
		}
		s.Timer = timer
		s.SetAux("custom_timer_text", userText)
		s.SetAux("custom_timer_seconds", strconv.Itoa(match.Seconds))
		s.UpdatedAt = e.now()
		out.DurationSeconds = match.Seconds
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("session %s: custom timer started for %d seconds", sessionID, out.DurationSeconds)
	return &out, nil
}

// StatusResult is the composed read-only view of a session. TimerNotice
// carries the one-shot completion message on the first status read after
// the timer expires, and is empty otherwise.
type StatusResult struct {
	SessionID   string
	RecipeName  string
	StepNumber  int
	IsComplete  bool
	Timer       *domain.TimerSnapshot
	TimerNotice string
}

// Status reports the session's current state. It never moves the step
// cursor; the only mutation a status read may perform is the lazy
// active→completed timer flip and the one-shot notice consumption.
func (e *Engine) Status(ctx context.Context, sessionID string) (*StatusResult, error) {
	var out StatusResult
	err := e.store.Update(ctx, sessionID, func(s *domain.Session) error {
		out.SessionID = s.ID
		out.RecipeName = s.RecipeName
		view := s.Steps.Current()
		out.StepNumber = view.StepNumber
		out.IsComplete = s.Completed || view.IsComplete

		if s.Timer != nil {
			now := e.now()
			out.TimerNotice = s.Timer.ConsumeCompletionNotice(now)
			snap := s.Timer.SnapshotAt(now)
			out.Timer = &snap
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// EndSession removes a session. Removal is idempotent: ending an unknown
// or already-ended session succeeds quietly. Completed sessions are
// archived first when an archive is configured.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	var record *domain.ArchivedSession
	err := e.store.View(ctx, sessionID, func(s *domain.Session) {
		if s.Completed {
			record = &domain.ArchivedSession{
				ID:         s.ID,
				RecipeName: s.RecipeName,
				StepCount:  s.Steps.Len(),
				StartedAt:  s.StartedAt,
				EndedAt:    e.now(),
			}
		}
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if record != nil && e.archive != nil {
		if err := e.archive.Archive(ctx, *record); err != nil {
			// The in-memory removal still proceeds; the archive is a log,
			// not the source of truth.
			e.log.Error("archiving session %s: %v", sessionID, err)
		}
	}

	if err := e.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	e.log.Info("ended session %s", sessionID)
	return nil
}

// DetectIngredients classifies the food items in an image via the wired
// recognizer.
func (e *Engine) DetectIngredients(ctx context.Context, image []byte) ([]string, error) {
	if e.recognizer == nil {
		return nil, fmt.Errorf("%w: no ingredient recognizer configured", domain.ErrUpstream)
	}
	if len(image) == 0 {
		return nil, &domain.ValidationError{Field: "image", Reason: "image is empty"}
	}
	return e.recognizer.Detect(ctx, image)
}

// SuggestRecipes asks the wired suggester for recipes matching the
// ingredients. Records the suggester could not fill in usably have already
// been dropped; an empty result is a valid answer.
func (e *Engine) SuggestRecipes(ctx context.Context, ingredients []string) ([]domain.RecipeRecord, error) {
	if e.suggester == nil {
		return nil, fmt.Errorf("%w: no recipe suggester configured", domain.ErrUpstream)
	}
	if len(ingredients) == 0 {
		return nil, &domain.ValidationError{Field: "ingredients", Reason: "ingredient list is empty"}
	}
	return e.suggester.Suggest(ctx, ingredients)
}
