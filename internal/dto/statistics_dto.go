package dto

type ChoiceStatisticsDTO struct {
	ID         uint    `json:"id"`
	Text       string  `json:"text"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QuestionStatisticsDTO carries sample answers for text questions and a
// per-choice breakdown for choice questions. Exactly one of the two is set,
// and a set list is written even when it is empty.
type QuestionStatisticsDTO struct {
	ID            uint                   `json:"id"`
	Text          string                 `json:"text"`
	Type          string                 `json:"type"`
	TotalAnswers  int64                  `json:"total_answers"`
	SampleAnswers *[]string              `json:"sample_answers,omitempty"`
	Choices       *[]ChoiceStatisticsDTO `json:"choices,omitempty"`
}

type SurveyStatisticsDTO struct {
	SurveyID       uint                    `json:"survey_id"`
	TotalResponses int64                   `json:"total_responses"`
	Questions      []QuestionStatisticsDTO `json:"questions"`
}
