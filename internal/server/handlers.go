package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
)

// ── Request/response bodies ──────────────────────────────────────

type startRequest struct {
	Recipe domain.RecipeRecord `json:"recipe"`
}

type startResponse struct {
	SessionID    string `json:"session_id"`
	RecipeName   string `json:"recipe_name"`
	StepText     string `json:"step_text"`
	StepNumber   int    `json:"step_number"`
	HasTimerHint bool   `json:"has_timer_hint"`
	Message      string `json:"message,omitempty"`
}

type advanceRequest struct {
	SessionID string `json:"session_id"`
}

type stepResponse struct {
	StepText     string `json:"step_text"`
	StepNumber   int    `json:"step_number"`
	IsComplete   bool   `json:"is_complete"`
	HasTimerHint bool   `json:"has_timer_hint"`
	Message      string `json:"message,omitempty"`
}

type timerRequest struct {
	SessionID    string `json:"session_id"`
	DurationText string `json:"duration_text,omitempty"` // custom-duration path
}

type timerResponse struct {
	DurationSeconds int `json:"duration_seconds"`
}

type statusResponse struct {
	SessionID   string                `json:"session_id"`
	RecipeName  string                `json:"recipe_name"`
	StepNumber  int                   `json:"step_number"`
	IsComplete  bool                  `json:"is_complete"`
	Timer       *domain.TimerSnapshot `json:"timer,omitempty"`
	TimerNotice string                `json:"timer_notice,omitempty"`
}

type detectRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type detectResponse struct {
	Ingredients []string `json:"ingredients"`
}

type suggestRequest struct {
	Ingredients []string `json:"ingredients"`
}

type suggestResponse struct {
	Recipes []domain.RecipeRecord `json:"recipes"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ── Handlers ─────────────────────────────────────────────────────

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.engine.StartSession(r.Context(), req.Recipe)
	if err != nil {
		s.writeError(w, err)
		return
	}

	msg, _ := s.responder.Respond(r.Context(), domain.StepView{
		Text:       res.StepText,
		StepNumber: res.StepNumber,
	}, nil)

	s.writeJSON(w, http.StatusCreated, startResponse{
		SessionID:    res.SessionID,
		RecipeName:   res.RecipeName,
		StepText:     res.StepText,
		StepNumber:   res.StepNumber,
		HasTimerHint: res.HasTimerHint,
		Message:      msg,
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.engine.Advance(r.Context(), req.SessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	msg, _ := s.responder.Respond(r.Context(), domain.StepView{
		Text:       res.StepText,
		StepNumber: res.StepNumber,
		IsComplete: res.IsComplete,
	}, nil)

	s.writeJSON(w, http.StatusOK, stepResponse{
		StepText:     res.StepText,
		StepNumber:   res.StepNumber,
		IsComplete:   res.IsComplete,
		HasTimerHint: res.HasTimerHint,
		Message:      msg,
	})
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	var req timerRequest
	if !s.decode(w, r, &req) {
		return
	}

	var (
		res *engine.TimerResult
		err error
	)
	if req.DurationText != "" {
		res, err = s.engine.SetCustomTimer(r.Context(), req.SessionID, req.DurationText)
	} else {
		res, err = s.engine.StartTimerForCurrentStep(r.Context(), req.SessionID)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, timerResponse{DurationSeconds: res.DurationSeconds})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		s.writeError(w, &domain.ValidationError{Field: "session_id", Reason: "missing query parameter"})
		return
	}

	res, err := s.engine.Status(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		SessionID:   res.SessionID,
		RecipeName:  res.RecipeName,
		StepNumber:  res.StepNumber,
		IsComplete:  res.IsComplete,
		Timer:       res.Timer,
		TimerNotice: res.TimerNotice,
	})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.EndSession(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"ended": true})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if !s.decode(w, r, &req) {
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		s.writeError(w, &domain.ValidationError{Field: "image_base64", Reason: "not valid base64"})
		return
	}

	ingredients, err := s.engine.DetectIngredients(r.Context(), image)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detectResponse{Ingredients: ingredients})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !s.decode(w, r, &req) {
		return
	}

	recipes, err := s.engine.SuggestRecipes(r.Context(), req.Ingredients)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, suggestResponse{Recipes: recipes})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ── Plumbing ─────────────────────────────────────────────────────

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response: %v", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses with a structured
// body; no raw error trace ever reaches the caller as a bare string.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError

	status := http.StatusInternalServerError
	code := "internal_error"
	msg := "internal error"

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status, code, msg = http.StatusNotFound, "session_not_found", "no session with that id"
	case errors.As(err, &ve):
		status, code, msg = http.StatusBadRequest, "validation_error", ve.Error()
	case errors.Is(err, domain.ErrNoDuration):
		status, code, msg = http.StatusUnprocessableEntity, "no_duration_found", "the current step names no duration; supply one"
	case errors.Is(err, domain.ErrUnparseable):
		status, code, msg = http.StatusUnprocessableEntity, "unparseable_duration", "could not understand that duration"
	case errors.Is(err, domain.ErrUpstream):
		status, code, msg = http.StatusBadGateway, "upstream_failure", "an upstream model returned unusable output"
	default:
		s.log.Error("unexpected handler error: %v", err)
	}

	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
