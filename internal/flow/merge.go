package flow

import (
	"strings"

	"github.com/lbatista/espalier/pkg/domain"
)

// OrderedAnswers is an insertion-ordered questionCode -> value map. Setting
// an existing code updates its value in place; new codes append at the end.
// These are exactly the merge semantics the session state depends on.
type OrderedAnswers struct {
	order  []string
	values map[string]domain.Value
}

// NewOrderedAnswers creates an empty ordered map.
func NewOrderedAnswers() *OrderedAnswers {
	return &OrderedAnswers{values: make(map[string]domain.Value)}
}

// OrderedFromRecords builds an ordered map from an answer list. Codes are
// trimmed, entries with empty codes are dropped, and later duplicates
// overwrite earlier ones without moving them.
func OrderedFromRecords(records []domain.AnswerRecord) *OrderedAnswers {
	o := NewOrderedAnswers()
	for _, rec := range records {
		o.Set(rec.QuestionCode, rec.Value)
	}
	return o
}

// Set inserts or updates a value. Empty codes are ignored.
func (o *OrderedAnswers) Set(code string, v domain.Value) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	if _, exists := o.values[code]; !exists {
		o.order = append(o.order, code)
	}
	o.values[code] = v
}

// Get returns the value for a trimmed code.
func (o *OrderedAnswers) Get(code string) (domain.Value, bool) {
	v, ok := o.values[strings.TrimSpace(code)]
	return v, ok
}

// Has reports whether the code has a recorded value.
func (o *OrderedAnswers) Has(code string) bool {
	_, ok := o.values[strings.TrimSpace(code)]
	return ok
}

// Delete removes a code, preserving the relative order of the rest.
func (o *OrderedAnswers) Delete(code string) {
	code = strings.TrimSpace(code)
	if _, ok := o.values[code]; !ok {
		return
	}
	delete(o.values, code)
	for i, c := range o.order {
		if c == code {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of recorded answers.
func (o *OrderedAnswers) Len() int {
	return len(o.order)
}

// Records materializes the map back into the canonical ordered list.
func (o *OrderedAnswers) Records() []domain.AnswerRecord {
	records := make([]domain.AnswerRecord, 0, len(o.order))
	for _, code := range o.order {
		records = append(records, domain.AnswerRecord{QuestionCode: code, Value: o.values[code]})
	}
	return records
}

// MergeRecords overlays incoming onto saved: prior order is retained,
// overwritten values update in place, new codes append at the end.
// saved is mutated and returned.
func MergeRecords(saved *OrderedAnswers, incoming []domain.AnswerRecord) *OrderedAnswers {
	for _, rec := range incoming {
		saved.Set(rec.QuestionCode, rec.Value)
	}
	return saved
}

// Edit describes the earliest incoming answer whose changed value alters the
// traversal path.
type Edit struct {
	Code      string
	OldValue  domain.Value
	NewValue  domain.Value
	PrevChild string
	NewChild  string
}

// DetectEdit scans incoming in its given order (not graph order) for the
// first entry that overwrites a previously saved answer with a value leading
// to a different branch. Edits that change a value without changing the
// branch are skipped.
func DetectEdit(g *Graph, saved *OrderedAnswers, incoming []domain.AnswerRecord) (Edit, bool) {
	for _, rec := range incoming {
		code := strings.TrimSpace(rec.QuestionCode)
		if code == "" {
			continue
		}
		savedVal, ok := saved.Get(code)
		if !ok || savedVal.Equal(rec.Value) {
			continue
		}

		prevChild := NextCodeFor(g, code, savedVal)
		newChild := NextCodeFor(g, code, rec.Value)
		if prevChild == newChild {
			// Value changed but the flow did not; keep scanning.
			continue
		}
		return Edit{
			Code:      code,
			OldValue:  savedVal,
			NewValue:  rec.Value,
			PrevChild: prevChild,
			NewChild:  newChild,
		}, true
	}
	return Edit{}, false
}

// PruneSubtree removes every code reachable from fromCode (inclusive) out of
// the saved answers. Used to discard state invalidated by a flow-changing
// edit.
func PruneSubtree(g *Graph, saved *OrderedAnswers, fromCode string) {
	for _, code := range g.CollectSubtree(fromCode) {
		saved.Delete(code)
	}
}
