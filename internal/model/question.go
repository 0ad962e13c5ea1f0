package model

import "time"

// QuestionType is the kind of input a question expects.
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
)

// HasChoices reports whether answers to this type select from a choice set.
func (t QuestionType) HasChoices() bool {
	return t == QuestionTypeSingle || t == QuestionTypeMultiple
}

func (t QuestionType) Valid() bool {
	return t == QuestionTypeText || t.HasChoices()
}

type Question struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	SurveyID     uint         `json:"survey_id" gorm:"not null;index"`
	Text         string       `json:"text" gorm:"size:500;not null"`
	QuestionType QuestionType `json:"question_type" gorm:"size:20;not null"`
	IsRequired   bool         `json:"is_required" gorm:"not null;default:false"`
	Order        int          `json:"order" gorm:"not null;default:0"`
	Choices      []Choice     `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
