package flow

import (
	"strings"

	"github.com/lbatista/espalier/pkg/domain"
)

// minResolveCap is the floor for the branch walk iteration bound. The cap is
// derived from the graph depth at load time; the floor keeps the walk safe
// even if a malformed cyclic definition makes the computed depth meaningless.
const minResolveCap = 100

// NextCode applies the shared branch rule: for branching questions, the next
// code is the child of the answer whose code equals the stringified value;
// for all other types it is the question's own child. Returns "" when there
// is no match or no child.
func NextCode(q *domain.Question, v domain.Value) string {
	if q.Branching() {
		if v.IsZero() {
			return ""
		}
		ans := q.AnswerByCode(v.String())
		if ans == nil {
			return ""
		}
		return ans.ChildQuestion.TargetCode()
	}
	return q.ChildQuestion.TargetCode()
}

// NextCodeFor resolves the question by code first, returning "" for codes
// absent from the graph.
func NextCodeFor(g *Graph, code string, v domain.Value) string {
	q, ok := g.FindByCode(code)
	if !ok {
		return ""
	}
	return NextCode(q, v)
}

// ResolveBranch walks the graph from the root and reconstructs the ordered
// list of questions currently in play for the merged state.
//
// A question joins the branch when it is directly answered, or when some
// descendant of it is (stale or partially consistent state). Directly
// answered questions advance by the branch rule; unanswered ones descend
// into the first edge whose subtree holds an answered code.
func ResolveBranch(g *Graph, merged *OrderedAnswers) []*domain.Question {
	var branch []*domain.Question
	if merged.Len() == 0 {
		return branch
	}
	root := g.Root()
	if root == nil {
		return branch
	}

	limit := g.MaxDepth() + 1
	if limit < minResolveCap {
		limit = minResolveCap
	}

	currentCode := strings.TrimSpace(root.Code)
	for steps := 0; currentCode != "" && steps < limit; steps++ {
		q, ok := g.FindByCode(currentCode)
		if !ok {
			break
		}

		value, answered := merged.Get(currentCode)
		if !answered && !g.subtreeContainsAnswered(currentCode, merged, make(map[string]bool)) {
			break
		}

		branch = append(branch, q)

		if answered {
			currentCode = NextCode(q, value)
		} else {
			currentCode = g.findChildLeadingToAnswered(q, merged)
		}
	}
	return branch
}

// subtreeContainsAnswered reports whether the subtree rooted at code holds at
// least one answered question. The visited set guards against cyclic
// definitions.
func (g *Graph) subtreeContainsAnswered(code string, merged *OrderedAnswers, visited map[string]bool) bool {
	if code == "" || visited[code] {
		return false
	}
	if merged.Has(code) {
		return true
	}
	q, ok := g.byCode[code]
	if !ok {
		return false
	}
	visited[code] = true

	for _, child := range g.childCodes(q) {
		if g.subtreeContainsAnswered(child, merged, visited) {
			return true
		}
	}
	return false
}

// findChildLeadingToAnswered returns the first direct child edge (answers in
// declared order for branching questions, the single edge otherwise) whose
// subtree contains an answered code, or "" when none qualifies.
func (g *Graph) findChildLeadingToAnswered(q *domain.Question, merged *OrderedAnswers) string {
	for _, child := range g.childCodes(q) {
		if g.subtreeContainsAnswered(child, merged, make(map[string]bool)) {
			return child
		}
	}
	return ""
}
