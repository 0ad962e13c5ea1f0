package model

import "time"

// AnswerChoicesTable joins answers to the choices they selected.
const AnswerChoicesTable = "answer_choices"

type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ResponseID uint      `json:"response_id" gorm:"not null;index"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
	TextAnswer string    `json:"text_answer" gorm:"type:text;not null;default:''"`
	Choices    []Choice  `json:"choice_answer,omitempty" gorm:"many2many:answer_choices;constraint:OnDelete:CASCADE;"`
	CreatedAt  time.Time `json:"created_at"`
}
