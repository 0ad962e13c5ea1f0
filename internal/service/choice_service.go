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

type ChoiceService interface {
	ListChoices(ctx context.Context, questionID uint) ([]dto.ChoiceDTO, error)
	CreateChoice(ctx context.Context, questionID uint, req dto.ChoiceWriteDTO) (*dto.ChoiceDTO, error)
	GetChoice(ctx context.Context, questionID, id uint) (*dto.ChoiceDTO, error)
	UpdateChoice(ctx context.Context, questionID, id uint, req dto.ChoiceWriteDTO) (*dto.ChoiceDTO, error)
	PatchChoice(ctx context.Context, questionID, id uint, req dto.ChoicePatchDTO) (*dto.ChoiceDTO, error)
	DeleteChoice(ctx context.Context, questionID, id uint) error
}

type choiceService struct {
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	db           *gorm.DB
}

func NewChoiceService(questionRepo repository.QuestionRepository, choiceRepo repository.ChoiceRepository, db *gorm.DB) ChoiceService {
	return &choiceService{questionRepo: questionRepo, choiceRepo: choiceRepo, db: db}
}

func (s *choiceService) ListChoices(ctx context.Context, questionID uint) ([]dto.ChoiceDTO, error) {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, apperror.FromLookup(err, "question")
	}
	choices, err := s.choiceRepo.FindByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("error listing choices for question %d: %w", questionID, err)
	}

	resp := make([]dto.ChoiceDTO, 0, len(choices))
	for _, c := range choices {
		resp = append(resp, toChoiceDTO(c))
	}
	return resp, nil
}

func (s *choiceService) CreateChoice(ctx context.Context, questionID uint, req dto.ChoiceWriteDTO) (*dto.ChoiceDTO, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, apperror.FromLookup(err, "question")
	}
	if !question.QuestionType.HasChoices() {
		return nil, apperror.ValidationField("question", "Choices can only be added to single or multiple choice questions.")
	}

	choice := model.Choice{QuestionID: questionID, Text: req.Text, Value: req.Value}
	if err := s.choiceRepo.Create(ctx, &choice); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to create choice")
		return nil, fmt.Errorf("failed to create choice: %w", err)
	}
	log.Info().Uint("questionID", questionID).Uint("choiceID", choice.ID).Msg("Choice created")

	resp := toChoiceDTO(choice)
	return &resp, nil
}

func (s *choiceService) GetChoice(ctx context.Context, questionID, id uint) (*dto.ChoiceDTO, error) {
	choice, err := s.choiceRepo.FindInQuestion(ctx, questionID, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "choice")
	}
	resp := toChoiceDTO(*choice)
	return &resp, nil
}

func (s *choiceService) UpdateChoice(ctx context.Context, questionID, id uint, req dto.ChoiceWriteDTO) (*dto.ChoiceDTO, error) {
	return s.update(ctx, questionID, id, map[string]any{
		"text":  req.Text,
		"value": req.Value,
	})
}

func (s *choiceService) PatchChoice(ctx context.Context, questionID, id uint, req dto.ChoicePatchDTO) (*dto.ChoiceDTO, error) {
	fields := map[string]any{}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.Value != nil {
		fields["value"] = *req.Value
	}
	return s.update(ctx, questionID, id, fields)
}

func (s *choiceService) update(ctx context.Context, questionID, id uint, fields map[string]any) (*dto.ChoiceDTO, error) {
	choice, err := s.choiceRepo.FindInQuestion(ctx, questionID, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "choice")
	}
	if err := s.choiceRepo.Update(ctx, choice, fields); err != nil {
		log.Error().Err(err).Uint("choiceID", id).Msg("Failed to update choice")
		return nil, fmt.Errorf("failed to update choice %d: %w", id, err)
	}
	return s.GetChoice(ctx, questionID, id)
}

func (s *choiceService) DeleteChoice(ctx context.Context, questionID, id uint) error {
	if _, err := s.choiceRepo.FindInQuestion(ctx, questionID, id); err != nil {
		return apperror.FromLookup(err, "choice")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.choiceRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		log.Error().Err(err).Uint("choiceID", id).Msg("Failed to delete choice")
		return fmt.Errorf("failed to delete choice %d: %w", id, err)
	}
	log.Info().Uint("questionID", questionID).Uint("choiceID", id).Msg("Choice deleted")
	return nil
}
