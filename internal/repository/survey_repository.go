package repository

import (
	"context"
	"strings"
	"time"

	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper makes search terms match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SurveyListQuery is the repository-level form of the survey list filters.
type SurveyListQuery struct {
	CreatedBy   *uint
	IsActive    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Search      string
	OrderBy     string // one of the Order* constants
}

const (
	OrderCreatedAtAsc      = "created_at"
	OrderCreatedAtDesc     = "-created_at"
	OrderResponseCountAsc  = "response_count"
	OrderResponseCountDesc = "-response_count"
)

type SurveyRepository interface {
	WithTx(tx *gorm.DB) SurveyRepository
	Create(ctx context.Context, survey *model.Survey) error
	FindByID(ctx context.Context, id uint) (*model.Survey, error)
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Survey, error)
	FindAll(ctx context.Context, q SurveyListQuery) ([]model.Survey, error)
	Update(ctx context.Context, survey *model.Survey, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) WithTx(tx *gorm.DB) SurveyRepository {
	return &surveyRepository{db: tx}
}

func (r *surveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	// Questions are inserted by the caller with explicit parent ids.
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(survey).Error
}

func (r *surveyRepository) FindByID(ctx context.Context, id uint) (*model.Survey, error) {
	var survey model.Survey
	if err := r.db.WithContext(ctx).First(&survey, id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Survey, error) {
	var survey model.Survey
	err := preloadTree(r.db.WithContext(ctx)).First(&survey, id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindAll(ctx context.Context, q SurveyListQuery) ([]model.Survey, error) {
	query := r.db.WithContext(ctx).Model(&model.Survey{})

	if q.CreatedBy != nil {
		query = query.Where("surveys.created_by_id = ?", *q.CreatedBy)
	}
	if q.IsActive != nil {
		query = query.Where("surveys.is_active = ?", *q.IsActive)
	}
	if q.CreatedFrom != nil {
		query = query.Where("surveys.created_at >= ?", *q.CreatedFrom)
	}
	if q.CreatedTo != nil {
		query = query.Where("surveys.created_at < ?", *q.CreatedTo)
	}
	if q.Search != "" {
		like := "%" + likeEscaper.Replace(q.Search) + "%"
		query = query.Where(`LOWER(surveys.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(surveys.description) LIKE LOWER(?) ESCAPE '\'`, like, like)
	}

	const responseCount = "(SELECT COUNT(*) FROM responses WHERE responses.survey_id = surveys.id)"
	switch q.OrderBy {
	case OrderCreatedAtAsc:
		query = query.Order("surveys.created_at ASC").Order("surveys.id ASC")
	case OrderResponseCountAsc:
		query = query.Order(responseCount + " ASC").Order("surveys.id ASC")
	case OrderResponseCountDesc:
		query = query.Order(responseCount + " DESC").Order("surveys.id DESC")
	default:
		query = query.Order("surveys.created_at DESC").Order("surveys.id DESC")
	}

	var surveys []model.Survey
	if err := preloadTree(query).Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepository) Update(ctx context.Context, survey *model.Survey, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(survey).Updates(fields).Error
}

// Delete removes the survey and everything below it. It must run inside a
// transaction.
func (r *surveyRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)
	sub := func() *gorm.DB { return tx.Session(&gorm.Session{NewDB: true}) }

	responseIDs := sub().Model(&model.Response{}).Select("id").Where("survey_id = ?", id)
	questionIDs := sub().Model(&model.Question{}).Select("id").Where("survey_id = ?", id)

	if err := deleteAnswers(tx, sub().Model(&model.Answer{}).Select("id").
		Where("response_id IN (?) OR question_id IN (?)", responseIDs, questionIDs)); err != nil {
		return err
	}
	if err := tx.Where("survey_id = ?", id).Delete(&model.Response{}).Error; err != nil {
		return err
	}
	if err := deleteChoices(tx, sub().Model(&model.Choice{}).Select("id").Where("question_id IN (?)", questionIDs)); err != nil {
		return err
	}
	if err := tx.Where("survey_id = ?", id).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Survey{}, id).Error
}

func preloadTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("CreatedBy").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\" ASC").Order("questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		})
}
