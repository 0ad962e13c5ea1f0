package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/controller"
	"github.com/lshigami/surveyhub/internal/middleware"
	"github.com/lshigami/surveyhub/internal/service"
)

type AnswerController struct {
	answerService service.AnswerService
}

func NewAnswerController(answerService service.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// ListAnswers godoc
// @Summary List my answers
// @Tags Answers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AnswerDTO
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Router /answers [get]
func (c *AnswerController) ListAnswers(ctx *gin.Context) {
	answers, err := c.answerService.ListAnswers(ctx.Request.Context(), middleware.ScopeFrom(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// GetAnswer godoc
// @Summary Get one of my answers
// @Tags Answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.AnswerDTO
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Failure 404 {object} dto.DetailResponse "Answer not found"
// @Router /answers/{id} [get]
func (c *AnswerController) GetAnswer(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	answer, err := c.answerService.GetAnswer(ctx.Request.Context(), middleware.ScopeFrom(ctx), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answer)
}
