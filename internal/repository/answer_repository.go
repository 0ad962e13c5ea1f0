package repository

import (
	"context"

	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository
	Create(ctx context.Context, answer *model.Answer) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]model.Answer, error)
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Answer, error)
	CountByResponseID(ctx context.Context, responseID uint) (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

// Create inserts the answer and links the already-persisted choices in
// answer.Choices without touching the choice rows themselves.
func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Omit("Question", "Choices.*").Create(answer).Error
}

func (r *answerRepository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).Model(&model.Answer{}).Scopes(scope).
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") }).
		Order("answers.id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.WithContext(ctx).Model(&model.Answer{}).Scopes(scope).
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") }).
		First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) CountByResponseID(ctx context.Context, responseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Answer{}).Where("response_id = ?", responseID).Count(&count).Error
	return count, err
}
