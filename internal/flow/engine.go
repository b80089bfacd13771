package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lbatista/espalier/internal/logging"
	"github.com/lbatista/espalier/pkg/domain"
	"github.com/lbatista/espalier/pkg/session"
)

// Outcome is the result of one resolution step: either the next question to
// show, or the terminal summary when the flow has ended.
type Outcome struct {
	SessionID       string
	QuestionnaireID string

	// Next is the question to present. Nil when Done.
	Next *domain.Question

	// Done marks end-of-flow; Summary is populated only then.
	Done    bool
	Summary []domain.SummaryEntry
}

// Engine drives the flow resolution for one questionnaire definition.
// All session mutation happens under the session manager's per-session lock,
// so concurrent requests for the same session are serialized rather than
// racing on the read-merge-write cycle.
type Engine struct {
	graph    *Graph
	sessions *session.Manager
	logger   *slog.Logger
}

// NewEngine creates an engine over an indexed graph and a session manager.
func NewEngine(g *Graph, sessions *session.Manager, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{graph: g, sessions: sessions, logger: logger}
}

// Graph exposes the indexed definition.
func (e *Engine) Graph() *Graph {
	return e.graph
}

// NextStep merges the optional questionnaire block of a request into the
// session's saved progress and derives the next question or the terminal
// summary. The merged state is persisted before the outcome is computed.
func (e *Engine) NextStep(ctx context.Context, sessionID string, block map[string]any) (*Outcome, error) {
	var out *Outcome
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		out, err = e.step(ctx, sessionID, block)
		return err
	})
	return out, err
}

func (e *Engine) step(ctx context.Context, sessionID string, block map[string]any) (*Outcome, error) {
	incoming, present := NormalizeAnswers(block)
	questionnaireID := e.questionnaireID(block)

	saved, err := e.loadSaved(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := saved
	if present && len(incoming) > 0 {
		if edit, found := DetectEdit(e.graph, saved, incoming); found {
			e.logger.Debug("flow-changing edit detected",
				"session_id", sessionID,
				"question", edit.Code,
				"prev_child", edit.PrevChild,
				"new_child", edit.NewChild,
			)
			if edit.PrevChild != "" {
				PruneSubtree(e.graph, saved, edit.PrevChild)
			}
		}
		merged = MergeRecords(saved, incoming)
	}

	if err := e.persist(ctx, sessionID, questionnaireID, merged); err != nil {
		return nil, err
	}

	out := &Outcome{SessionID: sessionID, QuestionnaireID: questionnaireID}

	if merged.Len() == 0 {
		// No history and no new answers: start of flow.
		if root := e.graph.Root(); root != nil {
			out.Next = root
			return out, nil
		}
		out.Done = true
		out.Summary = []domain.SummaryEntry{}
		return out, nil
	}

	branch := ResolveBranch(e.graph, merged)
	if next := e.nextQuestion(sessionID, branch, merged); next != nil {
		out.Next = next
		return out, nil
	}

	out.Done = true
	out.Summary = BuildSummary(merged, branch)
	return out, nil
}

// nextQuestion applies the branch rule to the tip of the resolved branch.
// A missing next code, or one that does not resolve to a question (dangling
// reference), means end-of-flow.
func (e *Engine) nextQuestion(sessionID string, branch []*domain.Question, merged *OrderedAnswers) *domain.Question {
	if len(branch) == 0 {
		return nil
	}
	tip := branch[len(branch)-1]
	value, _ := merged.Get(tip.Code)
	code := NextCode(tip, value)
	if code == "" {
		return nil
	}
	next, ok := e.graph.FindByCode(code)
	if !ok {
		e.logger.Debug("dangling child reference, treating as end of flow",
			"session_id", sessionID,
			"question", tip.Code,
			"child", code,
		)
		return nil
	}
	return next
}

// Progress returns the saved state for a session, or nil when none exists.
func (e *Engine) Progress(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	state, err := e.sessions.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	return state, err
}

// SaveProgress persists the answers of a raw questionnaire block verbatim
// (after normalization), replacing any saved state. An absent or empty block
// clears the session instead.
func (e *Engine) SaveProgress(ctx context.Context, sessionID string, block map[string]any) error {
	return e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		incoming, present := NormalizeAnswers(block)
		if !present || len(incoming) == 0 {
			return e.sessions.Store().Delete(ctx, sessionID)
		}
		return e.persist(ctx, sessionID, e.questionnaireID(block), OrderedFromRecords(incoming))
	})
}

// ClearProgress removes all saved answers for a session.
func (e *Engine) ClearProgress(ctx context.Context, sessionID string) error {
	return e.sessions.Delete(ctx, sessionID)
}

// persist writes the merged state through the store. An empty state clears
// the session: store entries exist only while answers do.
func (e *Engine) persist(ctx context.Context, sessionID, questionnaireID string, merged *OrderedAnswers) error {
	store := e.sessions.Store()
	if merged.Len() == 0 {
		if err := store.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}
	state := &domain.SessionState{
		QuestionnaireID: questionnaireID,
		Answers:         merged.Records(),
	}
	if err := store.Save(ctx, sessionID, state); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// loadSaved reads the saved answers into an ordered map; a missing session
// is a valid empty input, never an error.
func (e *Engine) loadSaved(ctx context.Context, sessionID string) (*OrderedAnswers, error) {
	state, err := e.sessions.Store().Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return NewOrderedAnswers(), nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return OrderedFromRecords(state.Answers), nil
}

// questionnaireID prefers the ID carried by the request block, falling back
// to the loaded definition.
func (e *Engine) questionnaireID(block map[string]any) string {
	if block != nil {
		if id, ok := block["questionnaireId"].(string); ok && id != "" {
			return id
		}
	}
	if q := e.graph.Questionnaire(); q != nil {
		return q.QuestionnaireID
	}
	return ""
}
