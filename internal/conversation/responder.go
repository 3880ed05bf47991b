// Package conversation provides the user-facing language layer: a
// responder that phrases the current step, and a keyword parser for the
// CLI walkthrough. The core state machine works without either.
package conversation

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/gpt"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Responder = (*PlainResponder)(nil)
	_ domain.Responder = (*GPTResponder)(nil)
)

// PlainResponder phrases steps with plain templates. Always available.
type PlainResponder struct{}

// NewPlainResponder creates the template-based responder.
func NewPlainResponder() *PlainResponder { return &PlainResponder{} }

// Respond formats the current step as a short instruction line.
func (p *PlainResponder) Respond(ctx context.Context, step domain.StepView, aux map[string]string) (string, error) {
	if step.IsComplete {
		return domain.CompletionPhrase + " Great work!", nil
	}
	return fmt.Sprintf("Step %d: %s", step.StepNumber, step.Text), nil
}

const respondPrompt = `You are a friendly sous chef guiding someone through
a recipe out loud. Rephrase the given step as one or two short, encouraging
spoken sentences. Keep every quantity, temperature, and duration exactly as
written. Do not add new instructions.`

// GPTResponder phrases steps through a chat model, falling back to the
// plain template when the model is unreachable.
type GPTResponder struct {
	client   *gpt.Client
	fallback *PlainResponder
	log      *logger.Logger
}

// NewGPTResponder creates the model-backed responder.
func NewGPTResponder(client *gpt.Client, log *logger.Logger) *GPTResponder {
	return &GPTResponder{client: client, fallback: NewPlainResponder(), log: log}
}

// Respond asks the model to phrase the step. The session's aux state is
// passed along as context; the call never touches session state.
func (g *GPTResponder) Respond(ctx context.Context, step domain.StepView, aux map[string]string) (string, error) {
	if step.IsComplete {
		return g.fallback.Respond(ctx, step, aux)
	}

	user := fmt.Sprintf("Step %d: %s", step.StepNumber, step.Text)
	if note, ok := aux["custom_timer_text"]; ok {
		user += fmt.Sprintf("\n(The cook set a custom timer earlier: %s.)", note)
	}

	reply, err := g.client.Chat(ctx, []gpt.Message{
		gpt.TextMessage(gpt.RoleSystem, respondPrompt),
		gpt.TextMessage(gpt.RoleUser, user),
	})
	if err != nil {
		g.log.Warn("responder: model call failed, using plain phrasing: %v", err)
		return g.fallback.Respond(ctx, step, aux)
	}
	return reply, nil
}
