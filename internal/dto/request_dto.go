package dto

// ChoiceCreateDTO is used within QuestionCreateDTO for nested survey creation.
type ChoiceCreateDTO struct {
	Text  string  `json:"text" binding:"required,max=200"`
	Value *string `json:"value" binding:"omitempty,max=100"`
}

// QuestionCreateDTO is used within SurveyCreateDTO for nested survey creation.
type QuestionCreateDTO struct {
	Text         string            `json:"text" binding:"required,max=500"`
	QuestionType string            `json:"question_type" binding:"required,oneof=text single multiple"`
	IsRequired   bool              `json:"is_required"`
	Order        int               `json:"order" binding:"min=0"`
	Choices      []ChoiceCreateDTO `json:"choices" binding:"omitempty,dive"`
}

// SurveyCreateDTO builds a survey with its questions and choices in one call.
// The owner always comes from the authenticated user.
type SurveyCreateDTO struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description string              `json:"description"`
	IsActive    *bool               `json:"is_active"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// SurveyWriteDTO is the flat survey payload for POST /surveys and PUT.
type SurveyWriteDTO struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// SurveyPatchDTO carries a partial survey update; nil fields are left untouched.
type SurveyPatchDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type QuestionWriteDTO struct {
	Text         string `json:"text" binding:"required,max=500"`
	QuestionType string `json:"question_type" binding:"required,oneof=text single multiple"`
	IsRequired   bool   `json:"is_required"`
	Order        int    `json:"order" binding:"min=0"`
}

type QuestionPatchDTO struct {
	Text         *string `json:"text" binding:"omitempty,min=1,max=500"`
	QuestionType *string `json:"question_type" binding:"omitempty,oneof=text single multiple"`
	IsRequired   *bool   `json:"is_required"`
	Order        *int    `json:"order" binding:"omitempty,min=0"`
}

type ChoiceWriteDTO struct {
	Text  string  `json:"text" binding:"required,max=200"`
	Value *string `json:"value" binding:"omitempty,max=100"`
}

type ChoicePatchDTO struct {
	Text  *string `json:"text" binding:"omitempty,min=1,max=200"`
	Value *string `json:"value" binding:"omitempty,max=100"`
}

// AnswerPayloadDTO is one answer inside a submission. Each payload is
// validated on its own so the first invalid one can be reported.
type AnswerPayloadDTO struct {
	Question     *uint   `json:"question" binding:"required"`
	TextAnswer   *string `json:"text_answer"`
	ChoiceAnswer []uint  `json:"choice_answer"`
}

type SubmitAnswersDTO struct {
	Answers []AnswerPayloadDTO `json:"answers"`
}

type ResponseCreateDTO struct {
	Survey  *uint              `json:"survey" binding:"required"`
	Answers []AnswerPayloadDTO `json:"answers"`
}

// SurveyFilter holds the list query parameters for surveys.
type SurveyFilter struct {
	CreatedBy *uint
	IsActive  *bool
	CreatedOn string // YYYY-MM-DD
	Search    string
	Ordering  string
}

// ResponseFilter holds the list query parameters for responses.
type ResponseFilter struct {
	SurveyID *uint
	Ordering string
}
