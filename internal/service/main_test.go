package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lshigami/surveyhub/config"
	"github.com/lshigami/surveyhub/database"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/event"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/lshigami/surveyhub/internal/policy"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

type fixture struct {
	db         *gorm.DB
	surveys    SurveyService
	statistics StatisticsService
	responses  ResponseService
	answers    AnswerService
	questions  QuestionService
	choices    ChoiceService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{Database: config.Database{Driver: "sqlite", Path: ":memory:"}}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	surveyRepo := repository.NewSurveyRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	choiceRepo := repository.NewChoiceRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	publisher := event.Disabled()

	return &fixture{
		db:         db,
		surveys:    NewSurveyService(surveyRepo, questionRepo, choiceRepo, publisher, db),
		statistics: NewStatisticsService(surveyRepo, repository.NewStatisticsRepository(db)),
		responses:  NewResponseService(surveyRepo, responseRepo, answerRepo, questionRepo, choiceRepo, publisher, db),
		answers:    NewAnswerService(answerRepo),
		questions:  NewQuestionService(surveyRepo, questionRepo, db),
		choices:    NewChoiceService(questionRepo, choiceRepo, db),
	}
}

func (f *fixture) user(t *testing.T, username string) *auth.Principal {
	t.Helper()
	u := model.User{Username: username, PasswordHash: "x"}
	if err := f.db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &auth.Principal{UserID: u.ID, Username: u.Username}
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	if err := f.db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func responseScope(p *auth.Principal) policy.Scope {
	return policy.Response(p, policy.ActionCreate).Scope
}

func answerScope(p *auth.Principal) policy.Scope {
	return policy.Answer(p, policy.ActionRead).Scope
}

// colorPoll creates a survey with one single-choice question (Red, Blue,
// Green) and one text question.
func (f *fixture) colorPoll(t *testing.T, owner *auth.Principal) *dto.SurveyDTO {
	t.Helper()
	survey, err := f.surveys.CreateSurvey(context.Background(), owner.UserID, dto.SurveyCreateDTO{
		Title: "Color Poll",
		Questions: []dto.QuestionCreateDTO{
			{
				Text:         "Favourite color?",
				QuestionType: "single",
				IsRequired:   true,
				Order:        1,
				Choices:      []dto.ChoiceCreateDTO{{Text: "Red"}, {Text: "Blue"}, {Text: "Green"}},
			},
			{Text: "Why?", QuestionType: "text", Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("create color poll: %v", err)
	}
	return survey
}

func (f *fixture) respond(t *testing.T, p *auth.Principal, surveyID uint) *dto.ResponseDTO {
	t.Helper()
	resp, err := f.responses.CreateResponse(context.Background(), p.UserID, dto.ResponseCreateDTO{Survey: &surveyID})
	if err != nil {
		t.Fatalf("create response: %v", err)
	}
	return resp
}

var errInjected = errors.New("injected create failure")

// failCreates makes every INSERT into table fail once `allowed` inserts
// into it have succeeded.
func (f *fixture) failCreates(t *testing.T, table string, allowed int) {
	t.Helper()
	seen := 0
	name := fmt.Sprintf("test:fail_create_%s", table)
	err := f.db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		if seen >= allowed {
			tx.AddError(errInjected)
			return
		}
		seen++
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
