package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	adminctrl "github.com/lshigami/surveyhub/internal/controller/admin"
	userctrl "github.com/lshigami/surveyhub/internal/controller/user"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/middleware"
	"github.com/lshigami/surveyhub/internal/policy"
	"github.com/lshigami/surveyhub/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the controllers mounted by RegisterRoutes.
type Handlers struct {
	Surveys   *userctrl.SurveyController
	Responses *userctrl.ResponseController
	Answers   *userctrl.AnswerController
	Auth      *userctrl.AuthController
	Questions *adminctrl.QuestionController
	Choices   *adminctrl.ChoiceController
}

// NewEngine builds the gin engine with the global middleware stack.
func NewEngine(mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutes mounts the versioned API. Every entity group evaluates its
// policy before the handler runs.
func RegisterRoutes(r *gin.Engine, authService service.AuthService, h Handlers) {
	api := r.Group(userctrl.APIPrefix, middleware.Authenticate(authService))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/registration", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/user", h.Auth.CurrentUser)
		authGroup.POST("/password/change", h.Auth.ChangePassword)
	}

	surveys := api.Group("/surveys", middleware.Authorize(policy.Survey))
	{
		surveys.GET("", h.Surveys.ListSurveys)
		surveys.POST("", h.Surveys.CreateSurvey)
		surveys.POST("/create", h.Surveys.CreateSurveyTree)
		surveys.GET("/:id", h.Surveys.GetSurvey)
		surveys.PUT("/:id", h.Surveys.UpdateSurvey)
		surveys.PATCH("/:id", h.Surveys.PatchSurvey)
		surveys.DELETE("/:id", h.Surveys.DeleteSurvey)
		surveys.GET("/:id/statistics", h.Surveys.GetStatistics)
	}

	questions := api.Group("/surveys/:id/questions", middleware.Authorize(policy.Question))
	{
		questions.GET("", h.Questions.ListQuestions)
		questions.POST("", h.Questions.CreateQuestion)
		questions.GET("/:question_id", h.Questions.GetQuestion)
		questions.PUT("/:question_id", h.Questions.UpdateQuestion)
		questions.PATCH("/:question_id", h.Questions.PatchQuestion)
		questions.DELETE("/:question_id", h.Questions.DeleteQuestion)
	}

	choices := api.Group("/questions/:id/choices", middleware.Authorize(policy.Choice))
	{
		choices.GET("", h.Choices.ListChoices)
		choices.POST("", h.Choices.CreateChoice)
		choices.GET("/:choice_id", h.Choices.GetChoice)
		choices.PUT("/:choice_id", h.Choices.UpdateChoice)
		choices.PATCH("/:choice_id", h.Choices.PatchChoice)
		choices.DELETE("/:choice_id", h.Choices.DeleteChoice)
	}

	responses := api.Group("/responses", middleware.Authorize(policy.Response))
	{
		responses.GET("", h.Responses.ListResponses)
		responses.POST("", h.Responses.CreateResponse)
		responses.GET("/:id", h.Responses.GetResponse)
		responses.DELETE("/:id", h.Responses.DeleteResponse)
		responses.POST("/:id/submit-answers", h.Responses.SubmitAnswers)
	}

	answers := api.Group("/answers", middleware.Authorize(policy.Answer))
	{
		answers.GET("", h.Answers.ListAnswers)
		answers.GET("/:id", h.Answers.GetAnswer)
	}
}
