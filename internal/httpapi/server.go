// Package httpapi exposes the flow engine over HTTP: one resolution endpoint,
// read access to the loaded definition, and session lifecycle management.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lbatista/espalier/internal/flow"
	"github.com/lbatista/espalier/internal/logging"
	"github.com/lbatista/espalier/pkg/domain"
)

// Engine is the slice of the flow engine the HTTP layer needs.
type Engine interface {
	NextStep(ctx context.Context, sessionID string, block map[string]any) (*flow.Outcome, error)
	Progress(ctx context.Context, sessionID string) (*domain.SessionState, error)
	ClearProgress(ctx context.Context, sessionID string) error
	Graph() *flow.Graph
}

// Server routes questionnaire requests to the engine.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	metrics *metrics
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine:  engine,
		logger:  logging.NewNop(),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.health)
	r.Get("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/questionnaire", s.getQuestionnaire)
	r.Post("/question_next_step", s.nextStep)
	r.Get("/session/{sessionID}", s.getSession)
	r.Delete("/session/{sessionID}", s.deleteSession)
	return r
}

type nextStepRequest struct {
	SessionID     string         `json:"sessionId"`
	Questionnaire map[string]any `json:"questionnaire"`
}

type nextStepResponse struct {
	SessionID       string                `json:"sessionId"`
	QuestionnaireID string                `json:"questionnaireId"`
	Questions       []domain.Question     `json:"questions,omitempty"`
	Message         string                `json:"message,omitempty"`
	Summary         []domain.SummaryEntry `json:"summary,omitempty"`
}

// nextStep handles POST /question_next_step. A request without a sessionId
// starts a fresh session under a minted ID, which the response echoes.
func (s *Server) nextStep(w http.ResponseWriter, r *http.Request) {
	var req nextStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("next step: invalid request body", "err", err)
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	out, err := s.engine.NextStep(r.Context(), sessionID, req.Questionnaire)
	if err != nil {
		http.Error(w, "resolution failed", http.StatusInternalServerError)
		s.logger.Error("next step failed", "session_id", sessionID, "err", err)
		return
	}
	s.metrics.recordStep(out.Done)

	resp := nextStepResponse{
		SessionID:       out.SessionID,
		QuestionnaireID: out.QuestionnaireID,
	}
	if out.Done {
		resp.Message = "questionnaire complete"
		resp.Summary = out.Summary
	} else {
		resp.Questions = []domain.Question{*out.Next}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// getQuestionnaire handles GET /questionnaire.
func (s *Server) getQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Graph().Questionnaire())
}

// getSession handles GET /session/{sessionID}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	state, err := s.engine.Progress(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		s.logger.Error("load session failed", "session_id", sessionID, "err", err)
		return
	}
	if state == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// deleteSession handles DELETE /session/{sessionID}.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.engine.ClearProgress(r.Context(), sessionID); err != nil {
		http.Error(w, "failed to clear session", http.StatusInternalServerError)
		s.logger.Error("clear session failed", "session_id", sessionID, "err", err)
		return
	}
	s.metrics.sessionsCleared.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
