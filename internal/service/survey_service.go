package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/event"
	"github.com/lshigami/surveyhub/internal/metrics"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/lshigami/surveyhub/internal/policy"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const createdOnLayout = "2006-01-02"

type SurveyService interface {
	// CreateSurvey builds the survey with its questions and choices in one
	// transaction. The owner is always ownerID.
	CreateSurvey(ctx context.Context, ownerID uint, req dto.SurveyCreateDTO) (*dto.SurveyDTO, error)
	// CreateFlatSurvey creates the survey row only.
	CreateFlatSurvey(ctx context.Context, ownerID uint, req dto.SurveyWriteDTO) (*dto.SurveyDTO, error)
	GetSurvey(ctx context.Context, id uint) (*dto.SurveyDTO, error)
	ListSurveys(ctx context.Context, filter dto.SurveyFilter) ([]dto.SurveyDTO, error)
	UpdateSurvey(ctx context.Context, p *auth.Principal, id uint, req dto.SurveyWriteDTO) (*dto.SurveyDTO, error)
	PatchSurvey(ctx context.Context, p *auth.Principal, id uint, req dto.SurveyPatchDTO) (*dto.SurveyDTO, error)
	DeleteSurvey(ctx context.Context, p *auth.Principal, id uint) error
}

type surveyService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	publisher    event.Publisher
	db           *gorm.DB // For transactions
}

func NewSurveyService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
	publisher event.Publisher,
	db *gorm.DB,
) SurveyService {
	return &surveyService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
		publisher:    publisher,
		db:           db,
	}
}

func (s *surveyService) CreateSurvey(ctx context.Context, ownerID uint, req dto.SurveyCreateDTO) (*dto.SurveyDTO, error) {
	if err := validateSurveyTree(req); err != nil {
		return nil, err
	}

	survey := model.Survey{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
		CreatedByID: ownerID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.surveyRepo.WithTx(tx).Create(ctx, &survey); err != nil {
			return fmt.Errorf("failed to create survey: %w", err)
		}

		questionRepo := s.questionRepo.WithTx(tx)
		choiceRepo := s.choiceRepo.WithTx(tx)
		for i, qReq := range req.Questions {
			question := model.Question{
				SurveyID:     survey.ID,
				Text:         qReq.Text,
				QuestionType: model.QuestionType(qReq.QuestionType),
				IsRequired:   qReq.IsRequired,
				Order:        qReq.Order,
			}
			if err := questionRepo.Create(ctx, &question); err != nil {
				return fmt.Errorf("failed to create question %d for survey %d: %w", i, survey.ID, err)
			}

			if len(qReq.Choices) > 0 {
				choices := make([]model.Choice, 0, len(qReq.Choices))
				for _, cReq := range qReq.Choices {
					choices = append(choices, model.Choice{
						QuestionID: question.ID,
						Text:       cReq.Text,
						Value:      cReq.Value,
					})
				}
				if err := choiceRepo.CreateBatch(ctx, choices); err != nil {
					return fmt.Errorf("failed to create choices for question %d: %w", question.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("Failed to create survey tree in transaction")
		return nil, err
	}

	log.Info().Uint("surveyID", survey.ID).Uint("ownerID", ownerID).Int("questions", len(req.Questions)).Msg("Survey created")
	metrics.SurveysCreated.Inc()
	publish(ctx, s.publisher, event.SurveyCreated, event.SurveyEvent{
		SurveyID:      survey.ID,
		OwnerID:       ownerID,
		QuestionCount: len(req.Questions),
		OccurredAt:    time.Now().UTC(),
	})

	return s.GetSurvey(ctx, survey.ID)
}

// validateSurveyTree checks what binding tags cannot express.
func validateSurveyTree(req dto.SurveyCreateDTO) error {
	fields := apperror.FieldErrors{}
	for i, q := range req.Questions {
		if !model.QuestionType(q.QuestionType).HasChoices() && len(q.Choices) > 0 {
			fields.Add(fmt.Sprintf("questions[%d].choices", i), "Choices are not allowed for text questions.")
		}
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

func (s *surveyService) CreateFlatSurvey(ctx context.Context, ownerID uint, req dto.SurveyWriteDTO) (*dto.SurveyDTO, error) {
	survey := model.Survey{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
		CreatedByID: ownerID,
	}
	if err := s.surveyRepo.Create(ctx, &survey); err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("Failed to create survey")
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}

	metrics.SurveysCreated.Inc()
	publish(ctx, s.publisher, event.SurveyCreated, event.SurveyEvent{
		SurveyID:   survey.ID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	})
	return s.GetSurvey(ctx, survey.ID)
}

func (s *surveyService) GetSurvey(ctx context.Context, id uint) (*dto.SurveyDTO, error) {
	survey, err := s.surveyRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "survey")
	}
	resp := toSurveyDTO(*survey)
	return &resp, nil
}

func (s *surveyService) ListSurveys(ctx context.Context, filter dto.SurveyFilter) ([]dto.SurveyDTO, error) {
	query := repository.SurveyListQuery{
		CreatedBy: filter.CreatedBy,
		IsActive:  filter.IsActive,
		Search:    filter.Search,
		OrderBy:   surveyOrdering(filter.Ordering),
	}
	if filter.CreatedOn != "" {
		day, err := time.ParseInLocation(createdOnLayout, filter.CreatedOn, time.UTC)
		if err != nil {
			return nil, apperror.ValidationField("created_at", "Enter a valid date.")
		}
		next := day.AddDate(0, 0, 1)
		query.CreatedFrom = &day
		query.CreatedTo = &next
	}

	surveys, err := s.surveyRepo.FindAll(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list surveys")
		return nil, fmt.Errorf("error listing surveys: %w", err)
	}

	resp := make([]dto.SurveyDTO, 0, len(surveys))
	for _, survey := range surveys {
		resp = append(resp, toSurveyDTO(survey))
	}
	return resp, nil
}

// surveyOrdering ignores unknown ordering fields and falls back to newest first.
func surveyOrdering(ordering string) string {
	switch ordering {
	case repository.OrderCreatedAtAsc, repository.OrderCreatedAtDesc,
		repository.OrderResponseCountAsc, repository.OrderResponseCountDesc:
		return ordering
	default:
		return repository.OrderCreatedAtDesc
	}
}

func (s *surveyService) UpdateSurvey(ctx context.Context, p *auth.Principal, id uint, req dto.SurveyWriteDTO) (*dto.SurveyDTO, error) {
	fields := map[string]any{
		"title":       req.Title,
		"description": req.Description,
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return s.update(ctx, p, id, fields)
}

func (s *surveyService) PatchSurvey(ctx context.Context, p *auth.Principal, id uint, req dto.SurveyPatchDTO) (*dto.SurveyDTO, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return s.update(ctx, p, id, fields)
}

func (s *surveyService) update(ctx context.Context, p *auth.Principal, id uint, fields map[string]any) (*dto.SurveyDTO, error) {
	survey, err := s.ownedSurvey(ctx, p, policy.ActionUpdate, id)
	if err != nil {
		return nil, err
	}
	if err := s.surveyRepo.Update(ctx, survey, fields); err != nil {
		log.Error().Err(err).Uint("surveyID", id).Msg("Failed to update survey")
		return nil, fmt.Errorf("failed to update survey %d: %w", id, err)
	}
	return s.GetSurvey(ctx, id)
}

func (s *surveyService) DeleteSurvey(ctx context.Context, p *auth.Principal, id uint) error {
	survey, err := s.ownedSurvey(ctx, p, policy.ActionDelete, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.surveyRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		log.Error().Err(err).Uint("surveyID", id).Msg("Failed to delete survey")
		return fmt.Errorf("failed to delete survey %d: %w", id, err)
	}

	log.Info().Uint("surveyID", id).Msg("Survey deleted")
	publish(ctx, s.publisher, event.SurveyDeleted, event.SurveyEvent{
		SurveyID:   id,
		OwnerID:    survey.CreatedByID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ownedSurvey loads the survey and applies the object-level ownership check.
func (s *surveyService) ownedSurvey(ctx context.Context, p *auth.Principal, action policy.Action, id uint) (*model.Survey, error) {
	survey, err := s.surveyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromLookup(err, "survey")
	}
	if decision := policy.SurveyOwner(p, action, survey.CreatedByID); !decision.Allowed {
		return nil, apperror.Permission(decision.Reason)
	}
	return survey, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// publish sends a domain event after commit. Failures are logged and never
// undo the committed write.
func publish(ctx context.Context, publisher event.Publisher, routingKey string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Warn().Err(err).Str("routingKey", routingKey).Msg("Failed to publish event")
	}
}
