package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_FindByCode(t *testing.T) {
	g := testGraph()

	q, ok := g.FindByCode("Q3")
	require.True(t, ok)
	assert.Equal(t, "Pick a category", q.Description)

	_, ok = g.FindByCode("NOPE")
	assert.False(t, ok)

	t.Run("codes are trimmed on lookup", func(t *testing.T) {
		q, ok := g.FindByCode("  Q1 ")
		require.True(t, ok)
		assert.Equal(t, "Q1", q.Code)
	})
}

func TestGraph_CollectSubtree(t *testing.T) {
	g := testGraph()

	t.Run("from root reaches everything", func(t *testing.T) {
		assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4", "Q6", "Q5"}, g.CollectSubtree("Q1"))
	})

	t.Run("from a branching node fans out over answers", func(t *testing.T) {
		assert.Equal(t, []string{"Q3", "Q4", "Q6"}, g.CollectSubtree("Q3"))
	})

	t.Run("leaf is just itself", func(t *testing.T) {
		assert.Equal(t, []string{"Q5"}, g.CollectSubtree("Q5"))
	})

	t.Run("unknown start is empty", func(t *testing.T) {
		assert.Empty(t, g.CollectSubtree("NOPE"))
	})

	t.Run("cyclic definition truncates instead of looping", func(t *testing.T) {
		cyclic := NewGraph(cyclicQuestionnaire())
		assert.Equal(t, []string{"Q1", "Q2"}, cyclic.CollectSubtree("Q1"))
	})
}

func TestGraph_MaxDepth(t *testing.T) {
	// Longest path: Q1 -> Q2 -> Q3 -> Q4
	assert.Equal(t, 4, testGraph().MaxDepth())

	t.Run("cycle guarded", func(t *testing.T) {
		assert.Equal(t, 2, NewGraph(cyclicQuestionnaire()).MaxDepth())
	})
}
