package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/event"
	"github.com/lshigami/surveyhub/internal/metrics"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/lshigami/surveyhub/internal/policy"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/lshigami/surveyhub/internal/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	msgQuestionNotInSurvey  = "Question does not belong to survey"
	msgChoiceNotInQuestion  = "Choice does not belong to question"
	msgSingleChoiceOnly     = "Single-choice questions accept only one choice."
	msgSurveyNotAccepting   = "This survey is not accepting responses."
	invalidPrimaryKeyFormat = "Invalid pk \"%d\" - object does not exist."
)

type ResponseService interface {
	// CreateResponse records a response by respondentID, optionally with
	// answers, in one transaction.
	CreateResponse(ctx context.Context, respondentID uint, req dto.ResponseCreateDTO) (*dto.ResponseDTO, error)
	ListResponses(ctx context.Context, scope policy.Scope, filter dto.ResponseFilter) ([]dto.ResponseDTO, error)
	GetResponse(ctx context.Context, scope policy.Scope, id uint) (*dto.ResponseDTO, error)
	DeleteResponse(ctx context.Context, scope policy.Scope, id uint) error
	// SubmitAnswers validates every payload before persisting any of them,
	// then stores the whole batch atomically.
	SubmitAnswers(ctx context.Context, scope policy.Scope, responseID uint, payloads []dto.AnswerPayloadDTO) error
}

type responseService struct {
	surveyRepo   repository.SurveyRepository
	responseRepo repository.ResponseRepository
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	publisher    event.Publisher
	db           *gorm.DB
}

func NewResponseService(
	surveyRepo repository.SurveyRepository,
	responseRepo repository.ResponseRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
	publisher event.Publisher,
	db *gorm.DB,
) ResponseService {
	return &responseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
		publisher:    publisher,
		db:           db,
	}
}

func (s *responseService) CreateResponse(ctx context.Context, respondentID uint, req dto.ResponseCreateDTO) (*dto.ResponseDTO, error) {
	surveyID := *req.Survey
	survey, err := s.surveyRepo.FindByID(ctx, surveyID)
	if err != nil {
		if apperror.Is(apperror.FromLookup(err, "survey"), apperror.KindNotFound) {
			return nil, apperror.ValidationField("survey", fmt.Sprintf(invalidPrimaryKeyFormat, surveyID))
		}
		return nil, fmt.Errorf("error fetching survey %d: %w", surveyID, err)
	}
	if !survey.IsActive {
		return nil, apperror.ValidationField("survey", msgSurveyNotAccepting)
	}

	answers, err := s.buildAnswers(ctx, survey.ID, req.Answers)
	if err != nil {
		metrics.SubmissionsRejected.WithLabelValues(apperror.KindOf(err).String()).Inc()
		return nil, err
	}

	response := model.Response{SurveyID: survey.ID, RespondentID: respondentID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.responseRepo.WithTx(tx).Create(ctx, &response); err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}
		return s.persistAnswers(ctx, tx, response.ID, answers)
	})
	if err != nil {
		log.Error().Err(err).Uint("surveyID", survey.ID).Uint("respondentID", respondentID).Msg("Failed to create response")
		return nil, err
	}

	log.Info().Uint("responseID", response.ID).Uint("surveyID", survey.ID).Int("answers", len(answers)).Msg("Response created")
	metrics.ResponsesCreated.Inc()
	metrics.AnswersSubmitted.Add(float64(len(answers)))
	publish(ctx, s.publisher, event.ResponseCreated, event.ResponseEvent{
		ResponseID:   response.ID,
		SurveyID:     survey.ID,
		RespondentID: respondentID,
		AnswerCount:  len(answers),
		OccurredAt:   time.Now().UTC(),
	})

	return s.GetResponse(ctx, policy.Unscoped, response.ID)
}

func (s *responseService) ListResponses(ctx context.Context, scope policy.Scope, filter dto.ResponseFilter) ([]dto.ResponseDTO, error) {
	query := repository.ResponseListQuery{SurveyID: filter.SurveyID, OrderBy: repository.OrderCreatedAtDesc}
	if filter.Ordering == repository.OrderCreatedAtAsc {
		query.OrderBy = repository.OrderCreatedAtAsc
	}

	responses, err := s.responseRepo.FindAll(ctx, scope, query)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list responses")
		return nil, fmt.Errorf("error listing responses: %w", err)
	}

	resp := make([]dto.ResponseDTO, 0, len(responses))
	for _, response := range responses {
		resp = append(resp, toResponseDTO(response))
	}
	return resp, nil
}

func (s *responseService) GetResponse(ctx context.Context, scope policy.Scope, id uint) (*dto.ResponseDTO, error) {
	response, err := s.responseRepo.FindByIDWithAnswers(ctx, scope, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "response")
	}
	resp := toResponseDTO(*response)
	return &resp, nil
}

func (s *responseService) DeleteResponse(ctx context.Context, scope policy.Scope, id uint) error {
	if _, err := s.responseRepo.FindByID(ctx, scope, id); err != nil {
		return apperror.FromLookup(err, "response")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.responseRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		log.Error().Err(err).Uint("responseID", id).Msg("Failed to delete response")
		return fmt.Errorf("failed to delete response %d: %w", id, err)
	}
	log.Info().Uint("responseID", id).Msg("Response deleted")
	return nil
}

func (s *responseService) SubmitAnswers(ctx context.Context, scope policy.Scope, responseID uint, payloads []dto.AnswerPayloadDTO) error {
	response, err := s.responseRepo.FindByID(ctx, scope, responseID)
	if err != nil {
		return apperror.FromLookup(err, "response")
	}

	answers, err := s.buildAnswers(ctx, response.SurveyID, payloads)
	if err != nil {
		log.Warn().Err(err).Uint("responseID", responseID).Msg("Answer submission rejected")
		metrics.SubmissionsRejected.WithLabelValues(apperror.KindOf(err).String()).Inc()
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.persistAnswers(ctx, tx, response.ID, answers)
	})
	if err != nil {
		log.Error().Err(err).Uint("responseID", responseID).Msg("Failed to persist answers in transaction")
		return err
	}

	log.Info().Uint("responseID", responseID).Int("answers", len(answers)).Msg("Answers submitted")
	metrics.AnswersSubmitted.Add(float64(len(answers)))
	publish(ctx, s.publisher, event.AnswersSubmitted, event.ResponseEvent{
		ResponseID:   response.ID,
		SurveyID:     response.SurveyID,
		RespondentID: response.RespondentID,
		AnswerCount:  len(answers),
		OccurredAt:   time.Now().UTC(),
	})
	return nil
}

// buildAnswers runs every check a batch must pass and returns the answers
// ready to insert. Shape errors for all payloads are reported before any
// cross-entity check runs.
func (s *responseService) buildAnswers(ctx context.Context, surveyID uint, payloads []dto.AnswerPayloadDTO) ([]model.Answer, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	for i := range payloads {
		if err := validation.Struct(&payloads[i]); err != nil {
			return nil, err
		}
	}

	var questionIDs, choiceIDs []uint
	for _, p := range payloads {
		questionIDs = append(questionIDs, *p.Question)
		choiceIDs = append(choiceIDs, p.ChoiceAnswer...)
	}
	questions, err := s.questionRepo.FindByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	choices, err := s.choiceRepo.FindByIDs(ctx, choiceIDs)
	if err != nil {
		return nil, fmt.Errorf("error fetching choices: %w", err)
	}
	questionByID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}
	choiceByID := make(map[uint]model.Choice, len(choices))
	for _, c := range choices {
		choiceByID[c.ID] = c
	}

	for _, p := range payloads {
		fields := apperror.FieldErrors{}
		if _, ok := questionByID[*p.Question]; !ok {
			fields.Add("question", fmt.Sprintf(invalidPrimaryKeyFormat, *p.Question))
		}
		for _, id := range p.ChoiceAnswer {
			if _, ok := choiceByID[id]; !ok {
				fields.Add("choice_answer", fmt.Sprintf(invalidPrimaryKeyFormat, id))
			}
		}
		if len(fields) > 0 {
			return nil, apperror.Validation(fields)
		}
	}

	answers := make([]model.Answer, 0, len(payloads))
	for _, p := range payloads {
		question := questionByID[*p.Question]
		if question.SurveyID != surveyID {
			return nil, apperror.Integrity(msgQuestionNotInSurvey)
		}

		answer := model.Answer{QuestionID: question.ID}
		if p.TextAnswer != nil {
			answer.TextAnswer = *p.TextAnswer
		}

		if question.QuestionType.HasChoices() {
			seen := make(map[uint]bool, len(p.ChoiceAnswer))
			for _, id := range p.ChoiceAnswer {
				choice := choiceByID[id]
				if choice.QuestionID != question.ID {
					return nil, apperror.Integrity(msgChoiceNotInQuestion)
				}
				if seen[id] {
					continue
				}
				seen[id] = true
				answer.Choices = append(answer.Choices, choice)
			}
			if question.QuestionType == model.QuestionTypeSingle && len(answer.Choices) > 1 {
				return nil, apperror.ValidationField("choice_answer", msgSingleChoiceOnly)
			}
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func (s *responseService) persistAnswers(ctx context.Context, tx *gorm.DB, responseID uint, answers []model.Answer) error {
	answerRepo := s.answerRepo.WithTx(tx)
	for i := range answers {
		answers[i].ResponseID = responseID
		if err := answerRepo.Create(ctx, &answers[i]); err != nil {
			return fmt.Errorf("failed to create answer for question %d: %w", answers[i].QuestionID, err)
		}
	}
	return nil
}
