package memory_test

import (
	"context"
	"testing"

	"github.com/lbatista/espalier/pkg/adapters/memory"
	"github.com/lbatista/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_NewFromQuestions(t *testing.T) {
	loader, err := memory.NewFromQuestions("QST-1",
		domain.Question{Code: "Q1", AnswerDataType: domain.TypeSimpleText},
	)
	require.NoError(t, err)

	q, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "QST-1", q.QuestionnaireID)
	assert.Equal(t, "Q1", q.Root().Code)
}

func TestLoader_RejectsMissingCode(t *testing.T) {
	_, err := memory.NewFromQuestions("QST-1", domain.Question{})
	assert.Error(t, err)
}
