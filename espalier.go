package espalier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lbatista/espalier/internal/definition"
	"github.com/lbatista/espalier/internal/flow"
	"github.com/lbatista/espalier/internal/logging"
	"github.com/lbatista/espalier/pkg/adapters/memory"
	"github.com/lbatista/espalier/pkg/domain"
	"github.com/lbatista/espalier/pkg/ports"
	"github.com/lbatista/espalier/pkg/session"
)

// Version is the library version, overridable at build time via -ldflags.
var Version = "0.1.0"

// Engine is the high-level entry point for the espalier library. It wraps the
// internal flow engine behind a validated questionnaire definition and a
// session-serialized store.
type Engine struct {
	flow          *flow.Engine
	sessions      *session.Manager
	questionnaire *domain.Questionnaire

	store   ports.SessionStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a session store. Defaults to the in-memory adapter.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed session locking for multi-replica
// deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New loads a questionnaire definition, validates it, and builds an engine
// over it. The definition is immutable afterwards; reload means a new engine.
func New(ctx context.Context, loader ports.DefinitionLoader, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	questionnaire, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}
	if err := definition.Validate(questionnaire); err != nil {
		return nil, fmt.Errorf("invalid questionnaire: %w", err)
	}
	eng.questionnaire = questionnaire

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	if eng.lockTTL > 0 {
		sessionOpts = append(sessionOpts, session.WithLockTTL(eng.lockTTL))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)
	eng.flow = flow.NewEngine(flow.NewGraph(questionnaire), eng.sessions, eng.logger)

	return eng, nil
}

// NextStep merges a request's questionnaire block into the session's saved
// progress and returns the next question, or the terminal summary when the
// flow has ended.
func (e *Engine) NextStep(ctx context.Context, sessionID string, block map[string]any) (*flow.Outcome, error) {
	return e.flow.NextStep(ctx, sessionID, block)
}

// ValidAnswer reports whether a value is acceptable for a question.
// Returns domain.ErrQuestionNotFound for an unknown question code.
func (e *Engine) ValidAnswer(questionCode string, value domain.Value) (bool, error) {
	q, ok := e.flow.Graph().FindByCode(questionCode)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionCode)
	}
	return flow.ValidAnswer(q, value), nil
}

// Progress returns the saved state for a session, or nil when none exists.
func (e *Engine) Progress(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	return e.flow.Progress(ctx, sessionID)
}

// SaveProgress replaces a session's saved answers with a raw questionnaire
// block, without resolving the next question. An empty block clears the
// session.
func (e *Engine) SaveProgress(ctx context.Context, sessionID string, block map[string]any) error {
	return e.flow.SaveProgress(ctx, sessionID, block)
}

// ClearProgress removes all saved answers for a session.
func (e *Engine) ClearProgress(ctx context.Context, sessionID string) error {
	return e.flow.ClearProgress(ctx, sessionID)
}

// Questionnaire returns the loaded, validated definition.
func (e *Engine) Questionnaire() *domain.Questionnaire {
	return e.questionnaire
}

// Graph exposes the indexed definition for read-only traversal.
func (e *Engine) Graph() *flow.Graph {
	return e.flow.Graph()
}
