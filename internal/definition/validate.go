package definition

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lbatista/espalier/pkg/domain"
)

var validate = validator.New()

var knownTypes = map[string]bool{
	domain.TypeSimpleText:     true,
	domain.TypeSimpleTextarea: true,
	domain.TypeBoolean:        true,
	domain.TypeDate:           true,
	domain.TypeDateTime:       true,
	domain.TypeAmount:         true,
	domain.TypeCombo:          true,
}

// Validate checks a questionnaire definition for structural problems before
// it is served: missing required fields, duplicate or dangling codes, answer
// lists on the wrong question types, unknown data types and cycles. All
// problems are collected and reported together.
//
// The runtime traversal still carries its own cycle guards; this check moves
// the acyclicity invariant to load time where a bad definition can fail fast.
func Validate(q *domain.Questionnaire) error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("definition shape invalid: %w", err)
	}

	var problems []string

	codes := make(map[string]bool)
	for i := range q.Questions {
		code := strings.TrimSpace(q.Questions[i].Code)
		if codes[code] {
			problems = append(problems, fmt.Sprintf("duplicate question code '%s'", code))
		}
		codes[code] = true
	}

	for i := range q.Questions {
		problems = append(problems, checkQuestion(&q.Questions[i], codes)...)
	}

	if cycle := findCycle(q); cycle != "" {
		problems = append(problems, fmt.Sprintf("cycle detected through question '%s'", cycle))
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

func checkQuestion(q *domain.Question, codes map[string]bool) []string {
	var problems []string

	if !knownTypes[q.AnswerDataType] {
		problems = append(problems, fmt.Sprintf("question '%s' has unknown answer data type '%s'", q.Code, q.AnswerDataType))
	}

	if q.Branching() {
		if len(q.Answers) == 0 {
			problems = append(problems, fmt.Sprintf("branching question '%s' declares no answers", q.Code))
		}
		if q.ChildQuestion != nil {
			problems = append(problems, fmt.Sprintf("branching question '%s' must branch through its answers, not childQuestion", q.Code))
		}
		for i := range q.Answers {
			if target := q.Answers[i].ChildQuestion.TargetCode(); target != "" && !codes[target] {
				problems = append(problems, fmt.Sprintf("answer '%s' of question '%s' references unknown question '%s'", q.Answers[i].Code, q.Code, target))
			}
		}
	} else {
		if len(q.Answers) > 0 {
			problems = append(problems, fmt.Sprintf("non-branching question '%s' declares answers", q.Code))
		}
		if target := q.ChildQuestion.TargetCode(); target != "" && !codes[target] {
			problems = append(problems, fmt.Sprintf("question '%s' references unknown question '%s'", q.Code, target))
		}
	}

	return problems
}

// findCycle runs a colored DFS over the definition edges and returns the
// code closing a cycle, or "".
func findCycle(q *domain.Questionnaire) string {
	byCode := make(map[string]*domain.Question)
	for i := range q.Questions {
		byCode[strings.TrimSpace(q.Questions[i].Code)] = &q.Questions[i]
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on current path
		black = 2 // finished
	)
	color := make(map[string]int)

	var visit func(code string) string
	visit = func(code string) string {
		switch color[code] {
		case gray:
			return code
		case black:
			return ""
		}
		node, ok := byCode[code]
		if !ok {
			return ""
		}
		color[code] = gray
		for _, child := range childCodes(node) {
			if hit := visit(child); hit != "" {
				return hit
			}
		}
		color[code] = black
		return ""
	}

	for i := range q.Questions {
		if hit := visit(strings.TrimSpace(q.Questions[i].Code)); hit != "" {
			return hit
		}
	}
	return ""
}

func childCodes(q *domain.Question) []string {
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
