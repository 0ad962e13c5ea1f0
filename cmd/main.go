package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/config"
	"github.com/lshigami/surveyhub/database"
	_ "github.com/lshigami/surveyhub/docs" // Swagger docs
	"github.com/lshigami/surveyhub/internal/auth"
	adminctrl "github.com/lshigami/surveyhub/internal/controller/admin"
	userctrl "github.com/lshigami/surveyhub/internal/controller/user"
	"github.com/lshigami/surveyhub/internal/event"
	"github.com/lshigami/surveyhub/internal/logger"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/lshigami/surveyhub/internal/router"
	"github.com/lshigami/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Survey API
// @version 1.0
// @description Create surveys with nested questions and choices, collect answers and read aggregate statistics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init("info", false)

	app := fx.New(
		fx.NopLogger,

		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			event.NewPublisher,
			auth.NewTokenManager,
			auth.NewRevocationStore,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSurveyRepository,
			repository.NewQuestionRepository,
			repository.NewChoiceRepository,
			repository.NewResponseRepository,
			repository.NewAnswerRepository,
			repository.NewStatisticsRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewSurveyService,
			service.NewStatisticsService,
			service.NewQuestionService,
			service.NewChoiceService,
			service.NewResponseService,
			service.NewAnswerService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewSurveyController,
			userctrl.NewResponseController,
			userctrl.NewAnswerController,
			userctrl.NewAuthController,
			adminctrl.NewQuestionController,
			adminctrl.NewChoiceController,
		),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAdmin),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func ConfigureLogger(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	return router.NewEngine(cfg.Server.GinMode)
}

func AutoMigrateDB(db *gorm.DB) error {
	return database.AutoMigrate(db)
}

// SeedAdmin creates the administrator named by ADMIN_USERNAME/ADMIN_PASSWORD.
func SeedAdmin(cfg *config.Config, authService service.AuthService) error {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		log.Info().Msg("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	surveyCtrl *userctrl.SurveyController,
	responseCtrl *userctrl.ResponseController,
	answerCtrl *userctrl.AnswerController,
	authCtrl *userctrl.AuthController,
	questionCtrl *adminctrl.QuestionController,
	choiceCtrl *adminctrl.ChoiceController,
) {
	router.RegisterRoutes(engine, authService, router.Handlers{
		Surveys:   surveyCtrl,
		Responses: responseCtrl,
		Answers:   answerCtrl,
		Auth:      authCtrl,
		Questions: questionCtrl,
		Choices:   choiceCtrl,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Survey API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
