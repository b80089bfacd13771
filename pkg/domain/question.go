package domain

import "strings"

// AnswerDataType constants enumerate the supported answer shapes.
const (
	// TypeSimpleText is a free-text answer (single line).
	TypeSimpleText = "simple-text"
	// TypeSimpleTextarea is a free-text answer (multi line).
	TypeSimpleTextarea = "simple-textarea"
	// TypeBoolean selects one of the question's declared answers (branching).
	TypeBoolean = "boolean"
	// TypeDate is an ISO-8601 calendar date, no time component.
	TypeDate = "date"
	// TypeDateTime is an ISO-8601 date-time.
	TypeDateTime = "dateTime"
	// TypeAmount is a structured monetary value {amount, currency}.
	TypeAmount = "amount"
	// TypeCombo selects one of the question's declared answers (branching).
	TypeCombo = "combo"
)

// Questionnaire is the root container of the static question definition.
// The first element of Questions is the traversal root. It is immutable
// after load and shared read-only by all sessions.
type Questionnaire struct {
	QuestionnaireID string     `json:"questionnaireId" yaml:"questionnaireId" validate:"required"`
	Questions       []Question `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

// Root returns the traversal root, or nil for an empty definition.
func (q *Questionnaire) Root() *Question {
	if q == nil || len(q.Questions) == 0 {
		return nil
	}
	return &q.Questions[0]
}

// Question is a node in the questionnaire graph.
//
// Branching questions (boolean/combo) fan out through their Answers; each
// selected answer may carry its own ChildQuestion reference. Linear questions
// use the single ChildQuestion field instead.
type Question struct {
	QuestionID          string `json:"questionId,omitempty" yaml:"questionId,omitempty"`
	Code                string `json:"code" yaml:"code" validate:"required"`
	Description         string `json:"description" yaml:"description"`
	CategoryCode        string `json:"categoryCode,omitempty" yaml:"categoryCode,omitempty"`
	CategoryDescription string `json:"categoryDescription,omitempty" yaml:"categoryDescription,omitempty"`

	Mandatory         bool `json:"isMandatory" yaml:"isMandatory"`
	CreditBooked      bool `json:"isCreditBooked" yaml:"isCreditBooked"`
	DocumentMandatory bool `json:"isDocumentMandatory" yaml:"isDocumentMandatory"`
	CommentMandatory  bool `json:"isCommentMandatory" yaml:"isCommentMandatory"`

	AnswerDataType string   `json:"answerDataTypeDescription" yaml:"answerDataTypeDescription" validate:"required"`
	Answers        []Answer `json:"answers,omitempty" yaml:"answers,omitempty" validate:"dive"`

	// NextActions and Guidance are advisory payloads, passed through unchanged.
	NextActions []NextAction `json:"nextActions,omitempty" yaml:"nextActions,omitempty"`
	Guidance    []string     `json:"guidance,omitempty" yaml:"guidance,omitempty"`

	ChildQuestion *ChildRef `json:"childQuestion,omitempty" yaml:"childQuestion,omitempty"`
}

// Branching reports whether the next step depends on the selected answer.
func (q *Question) Branching() bool {
	return q.AnswerDataType == TypeBoolean || q.AnswerDataType == TypeCombo
}

// AnswerByCode finds the declared answer matching code, or nil.
func (q *Question) AnswerByCode(code string) *Answer {
	for i := range q.Answers {
		if q.Answers[i].Code == code {
			return &q.Answers[i]
		}
	}
	return nil
}

// Answer is one possible response to a branching question.
type Answer struct {
	Code         string       `json:"code" yaml:"code" validate:"required"`
	Description  string       `json:"description" yaml:"description"`
	CreditBooked bool         `json:"isCreditBooked" yaml:"isCreditBooked"`
	NextActions  []NextAction `json:"nextActions,omitempty" yaml:"nextActions,omitempty"`

	// ChildQuestion is the branch taken when this answer is selected.
	ChildQuestion *ChildRef `json:"childQuestion,omitempty" yaml:"childQuestion,omitempty"`
}

// ChildRef is a weak reference to another question. It holds only the target
// code and is resolved through the graph lookup, never owned, so the
// definition stays cycle-free at the data level.
type ChildRef struct {
	Code string `json:"code" yaml:"code"`
}

// TargetCode returns the referenced code trimmed, or "" for a nil reference.
func (c *ChildRef) TargetCode() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Code)
}

// NextAction is an advisory instruction attached to questions and answers.
// The engine treats it as opaque.
type NextAction struct {
	Code        string `json:"code,omitempty" yaml:"code,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
