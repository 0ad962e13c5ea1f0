package event

import "time"

const (
	SurveyCreated    = "survey.created"
	SurveyDeleted    = "survey.deleted"
	ResponseCreated  = "response.created"
	AnswersSubmitted = "response.answers_submitted"
)

type SurveyEvent struct {
	SurveyID      uint      `json:"survey_id"`
	OwnerID       uint      `json:"owner_id"`
	QuestionCount int       `json:"question_count,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type ResponseEvent struct {
	ResponseID   uint      `json:"response_id"`
	SurveyID     uint      `json:"survey_id"`
	RespondentID uint      `json:"respondent_id"`
	AnswerCount  int       `json:"answer_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}
