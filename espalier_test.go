package espalier_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbatista/espalier"
	"github.com/lbatista/espalier/pkg/adapters/file"
	"github.com/lbatista/espalier/pkg/adapters/memory"
	"github.com/lbatista/espalier/pkg/domain"
)

const facadeDefinition = `{
  "questionnaireId": "QST-FACADE",
  "questions": [
    {
      "code": "Q1",
      "answerDataTypeDescription": "boolean",
      "isMandatory": true,
      "answers": [
        {"code": "Y", "childQuestion": {"code": "Q2"}},
        {"code": "N"}
      ]
    },
    {"code": "Q2", "answerDataTypeDescription": "simple-text"}
  ]
}`

func writeDefinition(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questionnaire.json")
	require.NoError(t, os.WriteFile(path, []byte(facadeDefinition), 0o644))
	return path
}

func TestFacade_Integration(t *testing.T) {
	ctx := context.Background()
	eng, err := espalier.New(ctx, file.NewLoader(writeDefinition(t)))
	require.NoError(t, err)

	assert.Equal(t, "QST-FACADE", eng.Questionnaire().QuestionnaireID)

	out, err := eng.NextStep(ctx, "s-facade", nil)
	require.NoError(t, err)
	require.NotNil(t, out.Next)
	assert.Equal(t, "Q1", out.Next.Code)

	out, err = eng.NextStep(ctx, "s-facade", map[string]any{
		"answers": []any{map[string]any{"questionCode": "Q1", "value": "Y"}},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Next)
	assert.Equal(t, "Q2", out.Next.Code)

	out, err = eng.NextStep(ctx, "s-facade", map[string]any{
		"answers": []any{map[string]any{"questionCode": "Q2", "value": "done"}},
	})
	require.NoError(t, err)
	assert.True(t, out.Done)
	require.Len(t, out.Summary, 2)

	state, err := eng.Progress(ctx, "s-facade")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Len(t, state.Answers, 2)

	require.NoError(t, eng.ClearProgress(ctx, "s-facade"))
	state, err = eng.Progress(ctx, "s-facade")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestFacade_RejectsInvalidDefinition(t *testing.T) {
	// A boolean answer pointing at a code that does not exist.
	loader := memory.NewLoader(&domain.Questionnaire{
		QuestionnaireID: "QST-BAD",
		Questions: []domain.Question{
			{
				Code:           "Q1",
				AnswerDataType: domain.TypeBoolean,
				Answers: []domain.Answer{
					{Code: "Y", ChildQuestion: &domain.ChildRef{Code: "GHOST"}},
					{Code: "N"},
				},
			},
		},
	})
	_, err := espalier.New(context.Background(), loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid questionnaire")
}

func TestFacade_ValidAnswer(t *testing.T) {
	eng, err := espalier.New(context.Background(), file.NewLoader(writeDefinition(t)))
	require.NoError(t, err)

	ok, err := eng.ValidAnswer("Q1", domain.TextValue("Y"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = eng.ValidAnswer("Q1", domain.TextValue("maybe"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = eng.ValidAnswer("NOPE", domain.TextValue("x"))
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}
