package domain

// AnswerRecord is a single (questionCode, value) pair, either submitted by a
// client or previously persisted.
type AnswerRecord struct {
	QuestionCode string `json:"questionCode"`
	Value        Value  `json:"value"`
}

// SessionState is the per-session persisted progress: the ordered list of
// answers accumulated by the merge rules. List order is insertion order and
// is significant. The engine only ever holds a transient copy per request;
// the session store owns the durable value.
type SessionState struct {
	QuestionnaireID string         `json:"questionnaireId"`
	Answers         []AnswerRecord `json:"answers"`
}

// NewSessionState creates an empty state bound to a questionnaire.
func NewSessionState(questionnaireID string) *SessionState {
	return &SessionState{QuestionnaireID: questionnaireID}
}

// Clone returns an independent copy so callers can mutate freely.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := &SessionState{QuestionnaireID: s.QuestionnaireID}
	if s.Answers != nil {
		out.Answers = make([]AnswerRecord, len(s.Answers))
		copy(out.Answers, s.Answers)
	}
	return out
}

// Empty reports whether the state carries no answers.
func (s *SessionState) Empty() bool {
	return s == nil || len(s.Answers) == 0
}

// SummaryEntry pairs a branch question with its recorded answer.
// Answer is nil when the question has no direct entry in the merged state.
type SummaryEntry struct {
	Question *Question `json:"question"`
	Answer   *Value    `json:"answer"`
}
