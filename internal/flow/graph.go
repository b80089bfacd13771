package flow

import (
	"strings"

	"github.com/lbatista/espalier/pkg/domain"
)

// Graph is the immutable, indexed view of a questionnaire definition.
// It is built once at startup and shared read-only by all sessions, so no
// locking is needed.
type Graph struct {
	questionnaire *domain.Questionnaire
	byCode        map[string]*domain.Question
	maxDepth      int
}

// NewGraph indexes the questionnaire by trimmed question code.
// When the same code appears twice the first declaration wins.
func NewGraph(q *domain.Questionnaire) *Graph {
	g := &Graph{
		questionnaire: q,
		byCode:        make(map[string]*domain.Question),
	}
	if q != nil {
		for i := range q.Questions {
			code := strings.TrimSpace(q.Questions[i].Code)
			if code == "" {
				continue
			}
			if _, exists := g.byCode[code]; !exists {
				g.byCode[code] = &q.Questions[i]
			}
		}
	}
	if root := q.Root(); root != nil {
		g.maxDepth = g.depthFrom(strings.TrimSpace(root.Code), make(map[string]bool))
	}
	return g
}

// Questionnaire returns the underlying definition.
func (g *Graph) Questionnaire() *domain.Questionnaire {
	return g.questionnaire
}

// Root returns the traversal root question, or nil for an empty definition.
func (g *Graph) Root() *domain.Question {
	return g.questionnaire.Root()
}

// FindByCode looks up a question by its trimmed code.
func (g *Graph) FindByCode(code string) (*domain.Question, bool) {
	q, ok := g.byCode[strings.TrimSpace(code)]
	return q, ok
}

// MaxDepth is the longest root-reachable path in the definition, in nodes.
// It is computed once at build time and feeds the branch resolver's
// iteration cap.
func (g *Graph) MaxDepth() int {
	return g.maxDepth
}

// CollectSubtree returns every question code reachable from startCode,
// inclusive, in depth-first order. Branching questions fan out over every
// answer's child; linear questions follow their single child edge. Codes
// already visited are skipped, so a malformed cyclic definition degrades to
// a truncated subtree instead of looping.
func (g *Graph) CollectSubtree(startCode string) []string {
	var acc []string
	visited := make(map[string]bool)
	g.collectSubtree(strings.TrimSpace(startCode), visited, &acc)
	return acc
}

func (g *Graph) collectSubtree(code string, visited map[string]bool, acc *[]string) {
	if code == "" || visited[code] {
		return
	}
	q, ok := g.byCode[code]
	if !ok {
		return
	}
	visited[code] = true
	*acc = append(*acc, code)

	for _, child := range g.childCodes(q) {
		g.collectSubtree(child, visited, acc)
	}
}

// childCodes enumerates the outgoing edges of a question: one per declared
// answer for branching types, the single child reference otherwise.
func (g *Graph) childCodes(q *domain.Question) []string {
	if q.Branching() {
		var codes []string
		for i := range q.Answers {
			if child := q.Answers[i].ChildQuestion.TargetCode(); child != "" {
				codes = append(codes, child)
			}
		}
		return codes
	}
	if child := q.ChildQuestion.TargetCode(); child != "" {
		return []string{child}
	}
	return nil
}

func (g *Graph) depthFrom(code string, onPath map[string]bool) int {
	if code == "" || onPath[code] {
		return 0
	}
	q, ok := g.byCode[code]
	if !ok {
		return 0
	}
	onPath[code] = true
	defer delete(onPath, code)

	deepest := 0
	for _, child := range g.childCodes(q) {
		if d := g.depthFrom(child, onPath); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
