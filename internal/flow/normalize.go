package flow

import (
	"strings"

	"github.com/lbatista/espalier/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// rawAnswer covers both wire shapes: the preferred `answers` entries carry
// questionCode, the legacy `comboQuestions` entries carry key.
type rawAnswer struct {
	QuestionCode string `mapstructure:"questionCode"`
	Key          string `mapstructure:"key"`
	Value        any    `mapstructure:"value"`
}

// NormalizeAnswers converts the raw questionnaire block of a request into the
// canonical ordered answer list.
//
// The preferred shape is `answers` ([{questionCode, value}]); when that field
// is absent or not a list, the legacy `comboQuestions` shape ([{key, value}])
// is translated field-for-field. Question codes are trimmed and values are
// canonicalized into domain.Value.
//
// The second return distinguishes "no block provided" (nil, false) from
// "block provided but empty" (empty slice, true).
func NormalizeAnswers(block map[string]any) ([]domain.AnswerRecord, bool) {
	if block == nil {
		return nil, false
	}

	records := []domain.AnswerRecord{}
	if items, ok := block["answers"].([]any); ok {
		for _, item := range items {
			if rec, ok := decodeEntry(item, false); ok {
				records = append(records, rec)
			}
		}
		return records, true
	}

	if items, ok := block["comboQuestions"].([]any); ok {
		for _, item := range items {
			if rec, ok := decodeEntry(item, true); ok {
				records = append(records, rec)
			}
		}
	}
	return records, true
}

// decodeEntry maps one list item into a canonical record. Non-map items are
// dropped, mirroring the tolerance of the request boundary.
func decodeEntry(item any, legacy bool) (domain.AnswerRecord, bool) {
	if _, ok := item.(map[string]any); !ok {
		return domain.AnswerRecord{}, false
	}

	var raw rawAnswer
	if err := mapstructure.Decode(item, &raw); err != nil {
		return domain.AnswerRecord{}, false
	}

	code := raw.QuestionCode
	if legacy {
		code = raw.Key
	}
	return domain.AnswerRecord{
		QuestionCode: strings.TrimSpace(code),
		Value:        domain.ValueFrom(raw.Value),
	}, true
}
