package flow

import (
	"github.com/lbatista/espalier/pkg/domain"
)

func child(code string) *domain.ChildRef {
	return &domain.ChildRef{Code: code}
}

// testQuestionnaire covers both branching styles:
//
//	Q1 (boolean) --Y--> Q2 (simple-text) --> Q3 (combo) --A--> Q4 (date)
//	             --N--> Q5 (amount)                      --B--> (end)
//	                                                     --C--> Q6 (dateTime)
func testQuestionnaire() *domain.Questionnaire {
	return &domain.Questionnaire{
		QuestionnaireID: "QST-1",
		Questions: []domain.Question{
			{
				Code:           "Q1",
				Description:    "Do you want to continue?",
				AnswerDataType: domain.TypeBoolean,
				Mandatory:      true,
				Answers: []domain.Answer{
					{Code: "Y", Description: "Yes", ChildQuestion: child("Q2")},
					{Code: "N", Description: "No", ChildQuestion: child("Q5")},
				},
			},
			{
				Code:           "Q2",
				Description:    "Describe your request",
				AnswerDataType: domain.TypeSimpleText,
				ChildQuestion:  child("Q3"),
			},
			{
				Code:           "Q3",
				Description:    "Pick a category",
				AnswerDataType: domain.TypeCombo,
				Answers: []domain.Answer{
					{Code: "A", ChildQuestion: child("Q4")},
					{Code: "B"},
					{Code: "C", ChildQuestion: child("Q6")},
				},
			},
			{
				Code:           "Q4",
				Description:    "When did it happen?",
				AnswerDataType: domain.TypeDate,
			},
			{
				Code:           "Q5",
				Description:    "What amount is involved?",
				AnswerDataType: domain.TypeAmount,
			},
			{
				Code:           "Q6",
				Description:    "When exactly?",
				AnswerDataType: domain.TypeDateTime,
			},
		},
	}
}

func testGraph() *Graph {
	return NewGraph(testQuestionnaire())
}

// cyclicQuestionnaire is malformed on purpose: Q2 points back at Q1.
func cyclicQuestionnaire() *domain.Questionnaire {
	return &domain.Questionnaire{
		QuestionnaireID: "QST-CYCLE",
		Questions: []domain.Question{
			{Code: "Q1", AnswerDataType: domain.TypeSimpleText, ChildQuestion: child("Q2")},
			{Code: "Q2", AnswerDataType: domain.TypeSimpleText, ChildQuestion: child("Q1")},
		},
	}
}

func records(pairs ...[2]string) []domain.AnswerRecord {
	out := make([]domain.AnswerRecord, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.AnswerRecord{QuestionCode: p[0], Value: domain.TextValue(p[1])})
	}
	return out
}
