package ports

import (
	"context"
	"testing"
	"time"

	"github.com/lbatista/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract. Adapter packages
// call this from their own tests.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewSessionState("QST-1")
		state.Answers = []domain.AnswerRecord{
			{QuestionCode: "Q1", Value: domain.TextValue("Y")},
			{QuestionCode: "Q2", Value: domain.AmountValue("10.50", "EUR")},
		}

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "QST-1", loaded.QuestionnaireID)
		require.Len(t, loaded.Answers, 2, "answer order must survive persistence")
		assert.Equal(t, "Q1", loaded.Answers[0].QuestionCode)
		assert.True(t, domain.TextValue("Y").Equal(loaded.Answers[0].Value))
		assert.True(t, domain.AmountValue("10.50", "EUR").Equal(loaded.Answers[1].Value))
	})

	t.Run("Save replaces whole value", func(t *testing.T) {
		next := domain.NewSessionState("QST-1")
		next.Answers = []domain.AnswerRecord{{QuestionCode: "Q1", Value: domain.TextValue("N")}}
		require.NoError(t, store.Save(ctx, sessionID, next))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, loaded.Answers, 1)
		assert.True(t, domain.TextValue("N").Equal(loaded.Answers[0].Value))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSessionState("QST-1")))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-saved-"+sessionID))
	})
}
