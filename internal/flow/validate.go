package flow

import (
	"strconv"
	"time"

	"github.com/lbatista/espalier/pkg/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// ValidAnswer checks a submitted value against the data-type contract of a
// question. It is exposed for upstream callers; the flow-resolution path does
// not invoke it.
//
// A missing value fails when the question is mandatory, regardless of type.
// Unknown data types fail closed.
func ValidAnswer(q *domain.Question, v domain.Value) bool {
	if v.IsZero() && q.Mandatory {
		return false
	}

	switch q.AnswerDataType {
	case domain.TypeSimpleText, domain.TypeSimpleTextarea:
		return v.Kind() == domain.KindText

	case domain.TypeBoolean, domain.TypeCombo:
		return v.Kind() == domain.KindText && q.AnswerByCode(v.Text()) != nil

	case domain.TypeDate:
		if v.Kind() != domain.KindText {
			return false
		}
		_, err := time.Parse(dateLayout, v.Text())
		return err == nil

	case domain.TypeDateTime:
		return v.Kind() == domain.KindText && parseDateTime(v.Text())

	case domain.TypeAmount:
		amt, ok := v.AmountPayload()
		if !ok {
			return false
		}
		_, err := strconv.ParseFloat(amt.Amount, 64)
		return err == nil && amt.Currency != ""

	default:
		return false
	}
}

func parseDateTime(s string) bool {
	if _, err := time.Parse(dateTimeLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
