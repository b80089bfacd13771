package memory

import (
	"context"
	"fmt"

	"github.com/lbatista/espalier/pkg/domain"
)

// Loader implements ports.DefinitionLoader over an in-memory definition.
// Mostly useful for tests and embedded questionnaires.
type Loader struct {
	questionnaire *domain.Questionnaire
}

// NewLoader wraps an existing definition.
func NewLoader(q *domain.Questionnaire) *Loader {
	return &Loader{questionnaire: q}
}

// NewFromQuestions builds a definition from question values. The first
// question becomes the traversal root. This improves DX for tests.
func NewFromQuestions(questionnaireID string, questions ...domain.Question) (*Loader, error) {
	for _, q := range questions {
		if q.Code == "" {
			return nil, fmt.Errorf("question missing code")
		}
	}
	return &Loader{questionnaire: &domain.Questionnaire{
		QuestionnaireID: questionnaireID,
		Questions:       questions,
	}}, nil
}

// Load returns the wrapped definition.
func (l *Loader) Load(ctx context.Context) (*domain.Questionnaire, error) {
	if l.questionnaire == nil {
		return nil, fmt.Errorf("no questionnaire definition configured")
	}
	return l.questionnaire, nil
}
