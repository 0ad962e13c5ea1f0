package repository

import (
	"context"

	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseListQuery struct {
	SurveyID *uint
	OrderBy  string // OrderCreatedAtAsc or OrderCreatedAtDesc
}

// ResponseRepository lookups take a scope so callers only ever see the rows
// their access policy allows.
type ResponseRepository interface {
	WithTx(tx *gorm.DB) ResponseRepository
	Create(ctx context.Context, response *model.Response) error
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Response, error)
	FindByIDWithAnswers(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Response, error)
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, q ResponseListQuery) ([]model.Response, error)
	Delete(ctx context.Context, id uint) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) WithTx(tx *gorm.DB) ResponseRepository {
	return &responseRepository{db: tx}
}

func (r *responseRepository) Create(ctx context.Context, response *model.Response) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(response).Error
}

func (r *responseRepository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Response, error) {
	var response model.Response
	if err := r.db.WithContext(ctx).Scopes(scope).First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByIDWithAnswers(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Response, error) {
	var response model.Response
	err := preloadAnswers(r.db.WithContext(ctx).Scopes(scope)).First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, q ResponseListQuery) ([]model.Response, error) {
	query := r.db.WithContext(ctx).Model(&model.Response{}).Scopes(scope)
	if q.SurveyID != nil {
		query = query.Where("responses.survey_id = ?", *q.SurveyID)
	}
	if q.OrderBy == OrderCreatedAtAsc {
		query = query.Order("responses.created_at ASC").Order("responses.id ASC")
	} else {
		query = query.Order("responses.created_at DESC").Order("responses.id DESC")
	}

	var responses []model.Response
	err := preloadAnswers(query).Find(&responses).Error
	return responses, err
}

// Delete removes the response and its answers. It must run inside a
// transaction.
func (r *responseRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)
	answerIDs := tx.Session(&gorm.Session{NewDB: true}).Model(&model.Answer{}).Select("id").Where("response_id = ?", id)
	if err := deleteAnswers(tx, answerIDs); err != nil {
		return err
	}
	return tx.Delete(&model.Response{}, id).Error
}

func preloadAnswers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.id ASC") }).
		Preload("Answers.Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") })
}
