package repository

import (
	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
)

// deleteAnswers removes the answers selected by answerIDs (a subquery
// yielding answer ids) together with their choice links.
func deleteAnswers(tx *gorm.DB, answerIDs *gorm.DB) error {
	if err := tx.Exec("DELETE FROM "+model.AnswerChoicesTable+" WHERE answer_id IN (?)", answerIDs).Error; err != nil {
		return err
	}
	return tx.Where("id IN (?)", answerIDs).Delete(&model.Answer{}).Error
}

// deleteChoices removes the choices selected by choiceIDs and every answer
// link pointing at them.
func deleteChoices(tx *gorm.DB, choiceIDs *gorm.DB) error {
	if err := tx.Exec("DELETE FROM "+model.AnswerChoicesTable+" WHERE choice_id IN (?)", choiceIDs).Error; err != nil {
		return err
	}
	return tx.Where("id IN (?)", choiceIDs).Delete(&model.Choice{}).Error
}
