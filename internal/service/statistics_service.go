package service

import (
	"context"
	"fmt"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const sampleAnswersPerQuestion = 5

type StatisticsService interface {
	GetStatistics(ctx context.Context, surveyID uint) (*dto.SurveyStatisticsDTO, error)
}

type statisticsService struct {
	surveyRepo repository.SurveyRepository
	statsRepo  repository.StatisticsRepository
}

func NewStatisticsService(surveyRepo repository.SurveyRepository, statsRepo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{surveyRepo: surveyRepo, statsRepo: statsRepo}
}

func (s *statisticsService) GetStatistics(ctx context.Context, surveyID uint) (*dto.SurveyStatisticsDTO, error) {
	survey, err := s.surveyRepo.FindByIDWithQuestions(ctx, surveyID)
	if err != nil {
		return nil, apperror.FromLookup(err, "survey")
	}

	totalResponses, err := s.statsRepo.CountResponses(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error counting responses for survey %d: %w", surveyID, err)
	}
	answerCounts, err := s.statsRepo.CountAnswersByQuestion(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error counting answers for survey %d: %w", surveyID, err)
	}
	selectionCounts, err := s.statsRepo.CountSelectionsByChoice(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error counting choice selections for survey %d: %w", surveyID, err)
	}

	var textQuestionIDs []uint
	for _, q := range survey.Questions {
		if !q.QuestionType.HasChoices() {
			textQuestionIDs = append(textQuestionIDs, q.ID)
		}
	}
	samples, err := s.statsRepo.SampleTextAnswers(ctx, textQuestionIDs, sampleAnswersPerQuestion)
	if err != nil {
		return nil, fmt.Errorf("error sampling text answers for survey %d: %w", surveyID, err)
	}

	resp := &dto.SurveyStatisticsDTO{
		SurveyID:       survey.ID,
		TotalResponses: totalResponses,
		Questions:      make([]dto.QuestionStatisticsDTO, 0, len(survey.Questions)),
	}
	for _, q := range survey.Questions {
		total := answerCounts[q.ID]
		qStats := dto.QuestionStatisticsDTO{
			ID:           q.ID,
			Text:         q.Text,
			Type:         string(q.QuestionType),
			TotalAnswers: total,
		}

		if q.QuestionType.HasChoices() {
			choices := make([]dto.ChoiceStatisticsDTO, 0, len(q.Choices))
			for _, c := range q.Choices {
				count := selectionCounts[c.ID]
				choices = append(choices, dto.ChoiceStatisticsDTO{
					ID:         c.ID,
					Text:       c.Text,
					Count:      count,
					Percentage: percentage(count, total),
				})
			}
			qStats.Choices = &choices
		} else {
			sample := samples[q.ID]
			if sample == nil {
				sample = []string{}
			}
			qStats.SampleAnswers = &sample
		}
		resp.Questions = append(resp.Questions, qStats)
	}

	log.Debug().Uint("surveyID", surveyID).Int64("totalResponses", totalResponses).Msg("Survey statistics computed")
	return resp, nil
}

// percentage returns count/total*100 rounded to two decimals, 0 when total is 0.
func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(count).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		InexactFloat64()
}
