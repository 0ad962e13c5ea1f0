package model

import "time"

type Survey struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	CreatedByID uint       `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   User       `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE;"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:SurveyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Responses   []Response `json:"-" gorm:"foreignKey:SurveyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
