package service

import (
	"context"
	"fmt"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/policy"
	"github.com/lshigami/surveyhub/internal/repository"
)

// AnswerService is the read side of answers; writes go through
// ResponseService.SubmitAnswers.
type AnswerService interface {
	ListAnswers(ctx context.Context, scope policy.Scope) ([]dto.AnswerDTO, error)
	GetAnswer(ctx context.Context, scope policy.Scope, id uint) (*dto.AnswerDTO, error)
}

type answerService struct {
	answerRepo repository.AnswerRepository
}

func NewAnswerService(answerRepo repository.AnswerRepository) AnswerService {
	return &answerService{answerRepo: answerRepo}
}

func (s *answerService) ListAnswers(ctx context.Context, scope policy.Scope) ([]dto.AnswerDTO, error) {
	answers, err := s.answerRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("error listing answers: %w", err)
	}
	resp := make([]dto.AnswerDTO, 0, len(answers))
	for _, a := range answers {
		resp = append(resp, toAnswerDTO(a))
	}
	return resp, nil
}

func (s *answerService) GetAnswer(ctx context.Context, scope policy.Scope, id uint) (*dto.AnswerDTO, error) {
	answer, err := s.answerRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "answer")
	}
	resp := toAnswerDTO(*answer)
	return &resp, nil
}
