package middleware

import (
	"context"
	"regexp"

	"github.com/lbatista/espalier/pkg/domain"
	"github.com/lbatista/espalier/pkg/ports"
)

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of answers
// whose question code matches any of the patterns before they are persisted.
// Masking is one-way: the store never sees the original value. Branching
// question codes should not be matched, since their persisted value drives
// resumed resolution.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, state *domain.SessionState) error {
	// Clone so the in-memory state used by the engine keeps its values.
	cloned := state.Clone()
	for i := range cloned.Answers {
		if m.matches(cloned.Answers[i].QuestionCode) {
			cloned.Answers[i].Value = domain.TextValue("***")
		}
	}
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) matches(code string) bool {
	for _, p := range m.patterns {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}
