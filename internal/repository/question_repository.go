package repository

import (
	"context"

	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindInSurvey(ctx context.Context, surveyID, id uint) (*model.Question, error)
	FindBySurveyID(ctx context.Context, surveyID uint) ([]model.Question, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	Update(ctx context.Context, question *model.Question, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindInSurvey(ctx context.Context, surveyID, id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") }).
		Where("survey_id = ?", surveyID).
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySurveyID(ctx context.Context, surveyID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") }).
		Where("survey_id = ?", surveyID).
		Order("\"order\" ASC").Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// FindByIDs loads the questions without their choices; missing ids are
// simply absent from the result.
func (r *questionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, question *model.Question, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(question).Updates(fields).Error
}

// Delete removes the question, its choices and every answer given to it.
// It must run inside a transaction.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)
	sub := func() *gorm.DB { return tx.Session(&gorm.Session{NewDB: true}) }

	if err := deleteAnswers(tx, sub().Model(&model.Answer{}).Select("id").Where("question_id = ?", id)); err != nil {
		return err
	}
	if err := deleteChoices(tx, sub().Model(&model.Choice{}).Select("id").Where("question_id = ?", id)); err != nil {
		return err
	}
	return tx.Delete(&model.Question{}, id).Error
}
