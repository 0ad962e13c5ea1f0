package model

type Choice struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	QuestionID uint    `json:"question_id" gorm:"not null;index"`
	Text       string  `json:"text" gorm:"size:200;not null"`
	Value      *string `json:"value,omitempty" gorm:"size:100"`
}
