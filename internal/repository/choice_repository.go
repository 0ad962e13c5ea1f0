package repository

import (
	"context"

	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
)

type ChoiceRepository interface {
	WithTx(tx *gorm.DB) ChoiceRepository
	Create(ctx context.Context, choice *model.Choice) error
	CreateBatch(ctx context.Context, choices []model.Choice) error
	FindInQuestion(ctx context.Context, questionID, id uint) (*model.Choice, error)
	FindByQuestionID(ctx context.Context, questionID uint) ([]model.Choice, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Choice, error)
	Update(ctx context.Context, choice *model.Choice, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type choiceRepository struct {
	db *gorm.DB
}

func NewChoiceRepository(db *gorm.DB) ChoiceRepository {
	return &choiceRepository{db: db}
}

func (r *choiceRepository) WithTx(tx *gorm.DB) ChoiceRepository {
	return &choiceRepository{db: tx}
}

func (r *choiceRepository) Create(ctx context.Context, choice *model.Choice) error {
	return r.db.WithContext(ctx).Create(choice).Error
}

func (r *choiceRepository) CreateBatch(ctx context.Context, choices []model.Choice) error {
	if len(choices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&choices).Error
}

func (r *choiceRepository) FindInQuestion(ctx context.Context, questionID, id uint) (*model.Choice, error) {
	var choice model.Choice
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&choice, id).Error; err != nil {
		return nil, err
	}
	return &choice, nil
}

func (r *choiceRepository) FindByQuestionID(ctx context.Context, questionID uint) ([]model.Choice, error) {
	var choices []model.Choice
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id ASC").Find(&choices).Error
	return choices, err
}

func (r *choiceRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Choice, error) {
	var choices []model.Choice
	if len(ids) == 0 {
		return choices, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&choices).Error
	return choices, err
}

func (r *choiceRepository) Update(ctx context.Context, choice *model.Choice, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(choice).Updates(fields).Error
}

// Delete removes the choice and unlinks it from every answer. It must run
// inside a transaction.
func (r *choiceRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)
	return deleteChoices(tx, tx.Session(&gorm.Session{NewDB: true}).Model(&model.Choice{}).Select("id").Where("id = ?", id))
}
