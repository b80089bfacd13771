package flow

import (
	"testing"

	"github.com/lbatista/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchCodes(branch []*domain.Question) []string {
	codes := make([]string, 0, len(branch))
	for _, q := range branch {
		codes = append(codes, q.Code)
	}
	return codes
}

func TestNextCode(t *testing.T) {
	g := testGraph()

	t.Run("branching follows the selected answer", func(t *testing.T) {
		q := question(t, g, "Q1")
		assert.Equal(t, "Q2", NextCode(q, domain.TextValue("Y")))
		assert.Equal(t, "Q5", NextCode(q, domain.TextValue("N")))
	})

	t.Run("branching with unmatched value has no next", func(t *testing.T) {
		assert.Equal(t, "", NextCode(question(t, g, "Q1"), domain.TextValue("MAYBE")))
		assert.Equal(t, "", NextCode(question(t, g, "Q1"), domain.Value{}))
	})

	t.Run("answer without child ends the flow", func(t *testing.T) {
		assert.Equal(t, "", NextCode(question(t, g, "Q3"), domain.TextValue("B")))
	})

	t.Run("linear uses its own child regardless of value", func(t *testing.T) {
		assert.Equal(t, "Q3", NextCode(question(t, g, "Q2"), domain.TextValue("whatever")))
		assert.Equal(t, "", NextCode(question(t, g, "Q4"), domain.TextValue("2026-01-01")))
	})

	t.Run("unknown question code", func(t *testing.T) {
		assert.Equal(t, "", NextCodeFor(g, "NOPE", domain.TextValue("Y")))
	})
}

func TestResolveBranch(t *testing.T) {
	g := testGraph()

	t.Run("fully answered path", func(t *testing.T) {
		merged := OrderedFromRecords(records(
			[2]string{"Q1", "Y"}, [2]string{"Q2", "hi"}, [2]string{"Q3", "A"}, [2]string{"Q4", "2026-01-01"},
		))
		assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, branchCodes(ResolveBranch(g, merged)))
	})

	t.Run("stops before the first unanswered question", func(t *testing.T) {
		merged := OrderedFromRecords(records([2]string{"Q1", "Y"}))
		assert.Equal(t, []string{"Q1"}, branchCodes(ResolveBranch(g, merged)))
	})

	t.Run("descends through unanswered ancestors of answered state", func(t *testing.T) {
		// Only Q4 answered: the walk keeps Q1..Q3 in the branch because their
		// subtrees lead to the answered code.
		merged := OrderedFromRecords(records([2]string{"Q4", "2026-01-01"}))
		assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, branchCodes(ResolveBranch(g, merged)))
	})

	t.Run("answers outside the live branch are ignored", func(t *testing.T) {
		// Q1=N leads to Q5; the stale Q2 answer is not reachable via N.
		merged := OrderedFromRecords(records([2]string{"Q1", "N"}, [2]string{"Q2", "stale"}))
		assert.Equal(t, []string{"Q1"}, branchCodes(ResolveBranch(g, merged)))
	})

	t.Run("empty state yields empty branch", func(t *testing.T) {
		assert.Empty(t, ResolveBranch(g, NewOrderedAnswers()))
	})

	t.Run("cyclic definition terminates", func(t *testing.T) {
		cyclic := NewGraph(cyclicQuestionnaire())
		merged := OrderedFromRecords(records([2]string{"Q1", "a"}, [2]string{"Q2", "b"}))
		branch := ResolveBranch(cyclic, merged)
		assert.LessOrEqual(t, len(branch), minResolveCap)
	})
}

func TestBuildSummary(t *testing.T) {
	g := testGraph()
	merged := OrderedFromRecords(records([2]string{"Q1", "Y"}, [2]string{"Q4", "2026-01-01"}))
	branch := ResolveBranch(g, merged)
	require.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, branchCodes(branch))

	summary := BuildSummary(merged, branch)
	require.Len(t, summary, 4)

	assert.Equal(t, "Q1", summary[0].Question.Code)
	require.NotNil(t, summary[0].Answer)
	assert.True(t, domain.TextValue("Y").Equal(*summary[0].Answer))

	// Q2 and Q3 are on the branch but unanswered.
	assert.Nil(t, summary[1].Answer)
	assert.Nil(t, summary[2].Answer)
	require.NotNil(t, summary[3].Answer)
}
