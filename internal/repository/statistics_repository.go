package repository

import (
	"context"

	"github.com/lshigami/surveyhub/internal/model"
	"gorm.io/gorm"
)

// StatisticsRepository runs the grouped-count queries behind survey
// statistics. Each method issues one query for the whole survey.
type StatisticsRepository interface {
	CountResponses(ctx context.Context, surveyID uint) (int64, error)
	CountAnswersByQuestion(ctx context.Context, surveyID uint) (map[uint]int64, error)
	CountSelectionsByChoice(ctx context.Context, surveyID uint) (map[uint]int64, error)
	SampleTextAnswers(ctx context.Context, questionIDs []uint, perQuestion int) (map[uint][]string, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

type groupCount struct {
	GroupKey uint
	Total    int64
}

func (r *statisticsRepository) CountResponses(ctx context.Context, surveyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Response{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountAnswersByQuestion(ctx context.Context, surveyID uint) (map[uint]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Select("answers.question_id AS group_key, COUNT(*) AS total").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.survey_id = ?", surveyID).
		Group("answers.question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

// CountSelectionsByChoice counts, per choice, the answers to the choice's own
// question that selected it.
func (r *statisticsRepository) CountSelectionsByChoice(ctx context.Context, surveyID uint) (map[uint]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Table(model.AnswerChoicesTable).
		Select("answer_choices.choice_id AS group_key, COUNT(DISTINCT answer_choices.answer_id) AS total").
		Joins("JOIN choices ON choices.id = answer_choices.choice_id").
		Joins("JOIN answers ON answers.id = answer_choices.answer_id AND answers.question_id = choices.question_id").
		Joins("JOIN questions ON questions.id = choices.question_id").
		Where("questions.survey_id = ?", surveyID).
		Group("answer_choices.choice_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

// SampleTextAnswers returns up to perQuestion non-empty text answers for each
// question, earliest answers first.
func (r *statisticsRepository) SampleTextAnswers(ctx context.Context, questionIDs []uint, perQuestion int) (map[uint][]string, error) {
	samples := make(map[uint][]string, len(questionIDs))
	if len(questionIDs) == 0 || perQuestion <= 0 {
		return samples, nil
	}

	db := r.db.WithContext(ctx)
	ranked := db.Session(&gorm.Session{NewDB: true}).Model(&model.Answer{}).
		Select("question_id, text_answer, ROW_NUMBER() OVER (PARTITION BY question_id ORDER BY id) AS rn").
		Where("question_id IN ? AND text_answer <> ''", questionIDs)

	var rows []struct {
		QuestionID uint
		TextAnswer string
	}
	err := db.Table("(?) AS ranked", ranked).
		Select("question_id, text_answer").
		Where("rn <= ?", perQuestion).
		Order("question_id ASC").Order("rn ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		samples[row.QuestionID] = append(samples[row.QuestionID], row.TextAnswer)
	}
	return samples, nil
}

func toMap(rows []groupCount) map[uint]int64 {
	m := make(map[uint]int64, len(rows))
	for _, row := range rows {
		m[row.GroupKey] = row.Total
	}
	return m
}
