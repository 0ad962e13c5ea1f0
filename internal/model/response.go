package model

import "time"

// Response is one respondent's submission to a survey.
type Response struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SurveyID     uint      `json:"survey_id" gorm:"not null;index"`
	Survey       Survey    `json:"survey,omitempty" gorm:"foreignKey:SurveyID"`
	RespondentID uint      `json:"respondent_id" gorm:"not null;index"`
	Answers      []Answer  `json:"answers,omitempty" gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
