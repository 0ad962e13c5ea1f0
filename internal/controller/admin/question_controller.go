package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/controller"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary (Admin) List a survey's questions
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {array} dto.QuestionDTO
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	surveyID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	questions, err := c.questionService.ListQuestions(ctx.Request.Context(), surveyID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to a survey
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param question body dto.QuestionWriteDTO true "Question data"
// @Success 201 {object} dto.QuestionDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	surveyID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionWriteDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), surveyID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// GetQuestion godoc
// @Summary (Admin) Get a question
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionDTO
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Question not found"
// @Router /surveys/{id}/questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	surveyID, questionID, ok := questionPath(ctx)
	if !ok {
		return
	}
	question, err := c.questionService.GetQuestion(ctx.Request.Context(), surveyID, questionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary (Admin) Replace a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionWriteDTO true "Question data"
// @Success 200 {object} dto.QuestionDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Question not found"
// @Router /surveys/{id}/questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	surveyID, questionID, ok := questionPath(ctx)
	if !ok {
		return
	}
	var req dto.QuestionWriteDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), surveyID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// PatchQuestion godoc
// @Summary (Admin) Partially update a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionPatchDTO true "Fields to change"
// @Success 200 {object} dto.QuestionDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Question not found"
// @Router /surveys/{id}/questions/{question_id} [patch]
func (c *QuestionController) PatchQuestion(ctx *gin.Context) {
	surveyID, questionID, ok := questionPath(ctx)
	if !ok {
		return
	}
	var req dto.QuestionPatchDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.PatchQuestion(ctx.Request.Context(), surveyID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Deletes the question, its choices and every answer given to it.
// @Tags Admin - Questions
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param question_id path int true "Question ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Question not found"
// @Router /surveys/{id}/questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	surveyID, questionID, ok := questionPath(ctx)
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), surveyID, questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func questionPath(ctx *gin.Context) (surveyID, questionID uint, ok bool) {
	if surveyID, ok = controller.ParseID(ctx, "id"); !ok {
		return 0, 0, false
	}
	if questionID, ok = controller.ParseID(ctx, "question_id"); !ok {
		return 0, 0, false
	}
	return surveyID, questionID, true
}
