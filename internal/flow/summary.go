package flow

import (
	"github.com/lbatista/espalier/pkg/domain"
)

// BuildSummary zips the answered branch with the merged state into a
// display-ready list, one entry per branch question. The answer is nil when
// no value exists for that question's code.
func BuildSummary(merged *OrderedAnswers, branch []*domain.Question) []domain.SummaryEntry {
	summary := make([]domain.SummaryEntry, 0, len(branch))
	for _, q := range branch {
		entry := domain.SummaryEntry{Question: q}
		if v, ok := merged.Get(q.Code); ok {
			value := v
			entry.Answer = &value
		}
		summary = append(summary, entry)
	}
	return summary
}
