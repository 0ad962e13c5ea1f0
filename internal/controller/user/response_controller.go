package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/controller"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/middleware"
	"github.com/lshigami/surveyhub/internal/service"
)

// ResponseController serves the caller's own responses. Every lookup runs
// inside the scope set by the response policy.
type ResponseController struct {
	responseService service.ResponseService
}

func NewResponseController(responseService service.ResponseService) *ResponseController {
	return &ResponseController{responseService: responseService}
}

// ListResponses godoc
// @Summary List my responses
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param survey query int false "Survey ID"
// @Param ordering query string false "created_at or -created_at"
// @Success 200 {array} dto.ResponseDTO
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Router /responses [get]
func (c *ResponseController) ListResponses(ctx *gin.Context) {
	surveyID, err := controller.QueryUint(ctx, "survey")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	filter := dto.ResponseFilter{SurveyID: surveyID, Ordering: ctx.Query("ordering")}

	responses, err := c.responseService.ListResponses(ctx.Request.Context(), middleware.ScopeFrom(ctx), filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, responses)
}

// CreateResponse godoc
// @Summary Start a response to a survey
// @Description Creates a response owned by the caller, optionally with answers validated as in submit-answers.
// @Tags Responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param response body dto.ResponseCreateDTO true "Response data"
// @Success 201 {object} dto.ResponseDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Router /responses [post]
func (c *ResponseController) CreateResponse(ctx *gin.Context) {
	var req dto.ResponseCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	p := auth.PrincipalFrom(ctx)

	response, err := c.responseService.CreateResponse(ctx.Request.Context(), p.UserID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// GetResponse godoc
// @Summary Get one of my responses
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Success 200 {object} dto.ResponseDTO
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Failure 404 {object} dto.DetailResponse "Response not found"
// @Router /responses/{id} [get]
func (c *ResponseController) GetResponse(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	response, err := c.responseService.GetResponse(ctx.Request.Context(), middleware.ScopeFrom(ctx), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// DeleteResponse godoc
// @Summary Delete one of my responses
// @Tags Responses
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Failure 404 {object} dto.DetailResponse "Response not found"
// @Router /responses/{id} [delete]
func (c *ResponseController) DeleteResponse(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.responseService.DeleteResponse(ctx.Request.Context(), middleware.ScopeFrom(ctx), id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAnswers godoc
// @Summary Submit a batch of answers
// @Description Validates every answer before saving any. Either all answers are stored or none.
// @Tags Responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Param answers body dto.SubmitAnswersDTO true "Answers"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid answers or answers not matching the survey"
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Failure 404 {object} dto.DetailResponse "Response not found"
// @Router /responses/{id}/submit-answers [post]
func (c *ResponseController) SubmitAnswers(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubmitAnswersDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}

	if err := c.responseService.SubmitAnswers(ctx.Request.Context(), middleware.ScopeFrom(ctx), id, req.Answers); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "answers submitted"})
}
