package dto

import "time"

type ChoiceDTO struct {
	ID    uint    `json:"id"`
	Text  string  `json:"text"`
	Value *string `json:"value"`
}

type QuestionDTO struct {
	ID           uint        `json:"id"`
	Text         string      `json:"text"`
	QuestionType string      `json:"question_type"`
	IsRequired   bool        `json:"is_required"`
	Order        int         `json:"order"`
	Choices      []ChoiceDTO `json:"choices"`
}

type SurveyDTO struct {
	URL         string        `json:"url"`
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	IsActive    bool          `json:"is_active"`
	Questions   []QuestionDTO `json:"questions"`
}

type AnswerDTO struct {
	ID           uint   `json:"id"`
	Response     uint   `json:"response"`
	Question     uint   `json:"question"`
	TextAnswer   string `json:"text_answer"`
	ChoiceAnswer []uint `json:"choice_answer"`
}

type ResponseDTO struct {
	ID         uint        `json:"id"`
	Survey     uint        `json:"survey"`
	Respondent uint        `json:"respondent"`
	CreatedAt  time.Time   `json:"created_at"`
	Answers    []AnswerDTO `json:"answers"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse is returned for permission, authentication and not-found errors.
type DetailResponse struct {
	Detail string `json:"detail"`
}
