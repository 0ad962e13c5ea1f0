package service

import (
	"context"
	"fmt"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService manages the questions of one survey. Every call resolves
// the parent survey first so an unknown survey is a NotFound.
type QuestionService interface {
	ListQuestions(ctx context.Context, surveyID uint) ([]dto.QuestionDTO, error)
	CreateQuestion(ctx context.Context, surveyID uint, req dto.QuestionWriteDTO) (*dto.QuestionDTO, error)
	GetQuestion(ctx context.Context, surveyID, id uint) (*dto.QuestionDTO, error)
	UpdateQuestion(ctx context.Context, surveyID, id uint, req dto.QuestionWriteDTO) (*dto.QuestionDTO, error)
	PatchQuestion(ctx context.Context, surveyID, id uint, req dto.QuestionPatchDTO) (*dto.QuestionDTO, error)
	DeleteQuestion(ctx context.Context, surveyID, id uint) error
}

type questionService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	db           *gorm.DB
}

func NewQuestionService(surveyRepo repository.SurveyRepository, questionRepo repository.QuestionRepository, db *gorm.DB) QuestionService {
	return &questionService{surveyRepo: surveyRepo, questionRepo: questionRepo, db: db}
}

func (s *questionService) ListQuestions(ctx context.Context, surveyID uint) ([]dto.QuestionDTO, error) {
	if _, err := s.surveyRepo.FindByID(ctx, surveyID); err != nil {
		return nil, apperror.FromLookup(err, "survey")
	}
	questions, err := s.questionRepo.FindBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error listing questions for survey %d: %w", surveyID, err)
	}

	resp := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, toQuestionDTO(q))
	}
	return resp, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, surveyID uint, req dto.QuestionWriteDTO) (*dto.QuestionDTO, error) {
	if _, err := s.surveyRepo.FindByID(ctx, surveyID); err != nil {
		return nil, apperror.FromLookup(err, "survey")
	}

	question := model.Question{
		SurveyID:     surveyID,
		Text:         req.Text,
		QuestionType: model.QuestionType(req.QuestionType),
		IsRequired:   req.IsRequired,
		Order:        req.Order,
	}
	if err := s.questionRepo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("Failed to create question")
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	log.Info().Uint("surveyID", surveyID).Uint("questionID", question.ID).Msg("Question created")

	resp := toQuestionDTO(question)
	return &resp, nil
}

func (s *questionService) GetQuestion(ctx context.Context, surveyID, id uint) (*dto.QuestionDTO, error) {
	question, err := s.questionRepo.FindInSurvey(ctx, surveyID, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "question")
	}
	resp := toQuestionDTO(*question)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, surveyID, id uint, req dto.QuestionWriteDTO) (*dto.QuestionDTO, error) {
	return s.update(ctx, surveyID, id, map[string]any{
		"text":          req.Text,
		"question_type": req.QuestionType,
		"is_required":   req.IsRequired,
		"order":         req.Order,
	})
}

func (s *questionService) PatchQuestion(ctx context.Context, surveyID, id uint, req dto.QuestionPatchDTO) (*dto.QuestionDTO, error) {
	fields := map[string]any{}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.QuestionType != nil {
		fields["question_type"] = *req.QuestionType
	}
	if req.IsRequired != nil {
		fields["is_required"] = *req.IsRequired
	}
	if req.Order != nil {
		fields["order"] = *req.Order
	}
	return s.update(ctx, surveyID, id, fields)
}

func (s *questionService) update(ctx context.Context, surveyID, id uint, fields map[string]any) (*dto.QuestionDTO, error) {
	question, err := s.questionRepo.FindInSurvey(ctx, surveyID, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "question")
	}
	if err := s.questionRepo.Update(ctx, question, fields); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	return s.GetQuestion(ctx, surveyID, id)
}

func (s *questionService) DeleteQuestion(ctx context.Context, surveyID, id uint) error {
	if _, err := s.questionRepo.FindInSurvey(ctx, surveyID, id); err != nil {
		return apperror.FromLookup(err, "question")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.questionRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	log.Info().Uint("surveyID", surveyID).Uint("questionID", id).Msg("Question deleted")
	return nil
}
