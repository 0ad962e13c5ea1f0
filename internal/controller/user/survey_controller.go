package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/controller"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
)

// APIPrefix is where the versioned API is mounted.
const APIPrefix = "/api/v1"

type SurveyController struct {
	surveyService     service.SurveyService
	statisticsService service.StatisticsService
}

func NewSurveyController(surveyService service.SurveyService, statisticsService service.StatisticsService) *SurveyController {
	return &SurveyController{surveyService: surveyService, statisticsService: statisticsService}
}

func (c *SurveyController) withURL(ctx *gin.Context, survey *dto.SurveyDTO) {
	survey.URL = controller.AbsoluteURL(ctx, fmt.Sprintf("%s/surveys/%d/", APIPrefix, survey.ID))
}

// ListSurveys godoc
// @Summary List surveys
// @Description Lists every survey with its questions. Open to anonymous callers.
// @Tags Surveys
// @Produce json
// @Param created_by query int false "Owner user id"
// @Param is_active query bool false "Only active or inactive surveys"
// @Param created_at query string false "Creation date (YYYY-MM-DD)"
// @Param search query string false "Case-insensitive match on title or description"
// @Param ordering query string false "created_at, -created_at, response_count or -response_count"
// @Success 200 {array} dto.SurveyDTO
// @Failure 400 {object} map[string][]string "Invalid filter"
// @Router /surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	filter := dto.SurveyFilter{
		CreatedOn: ctx.Query("created_at"),
		Search:    ctx.Query("search"),
		Ordering:  ctx.Query("ordering"),
	}
	var err error
	if filter.CreatedBy, err = controller.QueryUint(ctx, "created_by"); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	if filter.IsActive, err = controller.QueryBool(ctx, "is_active"); err != nil {
		controller.RespondError(ctx, err)
		return
	}

	surveys, err := c.surveyService.ListSurveys(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	for i := range surveys {
		c.withURL(ctx, &surveys[i])
	}
	ctx.JSON(http.StatusOK, surveys)
}

// CreateSurvey godoc
// @Summary Create a survey
// @Description Creates the survey row only. The owner is the authenticated caller.
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey body dto.SurveyWriteDTO true "Survey data"
// @Success 201 {object} dto.SurveyDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Router /surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	var req dto.SurveyWriteDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	p := auth.PrincipalFrom(ctx)

	survey, err := c.surveyService.CreateFlatSurvey(ctx.Request.Context(), p.UserID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	c.withURL(ctx, survey)
	ctx.JSON(http.StatusCreated, survey)
}

// CreateSurveyTree godoc
// @Summary Create a survey with questions and choices
// @Description Creates the survey, its questions and their choices in one transaction. Any created_by in the payload is ignored.
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey body dto.SurveyCreateDTO true "Survey tree"
// @Success 201 {object} dto.SurveyDTO
// @Failure 400 {object} map[string][]string "Invalid input data, keyed by field path"
// @Failure 403 {object} dto.DetailResponse "Not authenticated"
// @Router /surveys/create [post]
func (c *SurveyController) CreateSurveyTree(ctx *gin.Context) {
	var req dto.SurveyCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	p := auth.PrincipalFrom(ctx)

	survey, err := c.surveyService.CreateSurvey(ctx.Request.Context(), p.UserID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Uint("surveyID", survey.ID).Uint("userID", p.UserID).Msg("Survey tree created")
	c.withURL(ctx, survey)
	ctx.JSON(http.StatusCreated, survey)
}

// GetSurvey godoc
// @Summary Get a survey
// @Tags Surveys
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.SurveyDTO
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	survey, err := c.surveyService.GetSurvey(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	c.withURL(ctx, survey)
	ctx.JSON(http.StatusOK, survey)
}

// UpdateSurvey godoc
// @Summary Replace a survey's fields
// @Description Only the owner may update a survey.
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param survey body dto.SurveyWriteDTO true "Survey data"
// @Success 200 {object} dto.SurveyDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not the owner"
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id} [put]
func (c *SurveyController) UpdateSurvey(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SurveyWriteDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}

	survey, err := c.surveyService.UpdateSurvey(ctx.Request.Context(), auth.PrincipalFrom(ctx), id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	c.withURL(ctx, survey)
	ctx.JSON(http.StatusOK, survey)
}

// PatchSurvey godoc
// @Summary Partially update a survey
// @Description Only the owner may update a survey.
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param survey body dto.SurveyPatchDTO true "Fields to change"
// @Success 200 {object} dto.SurveyDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not the owner"
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id} [patch]
func (c *SurveyController) PatchSurvey(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SurveyPatchDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}

	survey, err := c.surveyService.PatchSurvey(ctx.Request.Context(), auth.PrincipalFrom(ctx), id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	c.withURL(ctx, survey)
	ctx.JSON(http.StatusOK, survey)
}

// DeleteSurvey godoc
// @Summary Delete a survey
// @Description Deletes the survey with its questions, choices, responses and answers. Only the owner may delete.
// @Tags Surveys
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.DetailResponse "Not the owner"
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.surveyService.DeleteSurvey(ctx.Request.Context(), auth.PrincipalFrom(ctx), id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetStatistics godoc
// @Summary Survey statistics
// @Description Response count plus per-question answer counts, sample text answers and per-choice percentages.
// @Tags Surveys
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.SurveyStatisticsDTO
// @Failure 404 {object} dto.DetailResponse "Survey not found"
// @Router /surveys/{id}/statistics [get]
func (c *SurveyController) GetStatistics(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	stats, err := c.statisticsService.GetStatistics(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
