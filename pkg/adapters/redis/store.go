package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lbatista/espalier/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// envelope is the persisted session layout: the answers list wrapped in a
// questionnaire object, as consumed by clients reading the store directly.
type envelope struct {
	Questionnaire envelopeBody `json:"questionnaire"`
}

type envelopeBody struct {
	QuestionnaireID string                `json:"questionnaireId"`
	Answers         []domain.AnswerRecord `json:"answers"`
}

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "espalier:session:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

// Save persists the state to Redis, replacing the whole value.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.SessionState) error {
	answers := state.Answers
	if answers == nil {
		answers = []domain.AnswerRecord{}
	}
	data, err := json.Marshal(envelope{Questionnaire: envelopeBody{
		QuestionnaireID: state.QuestionnaireID,
		Answers:         answers,
	}})
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the state from Redis.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	return &domain.SessionState{
		QuestionnaireID: env.Questionnaire.QuestionnaireID,
		Answers:         env.Questionnaire.Answers,
	}, nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
