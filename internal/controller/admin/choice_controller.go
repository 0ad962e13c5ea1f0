package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/controller"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/service"
)

type ChoiceController struct {
	choiceService service.ChoiceService
}

func NewChoiceController(choiceService service.ChoiceService) *ChoiceController {
	return &ChoiceController{choiceService: choiceService}
}

// ListChoices godoc
// @Summary (Admin) List a question's choices
// @Tags Admin - Choices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {array} dto.ChoiceDTO
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Question not found"
// @Router /questions/{id}/choices [get]
func (c *ChoiceController) ListChoices(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	choices, err := c.choiceService.ListChoices(ctx.Request.Context(), questionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, choices)
}

// CreateChoice godoc
// @Summary (Admin) Add a choice to a question
// @Tags Admin - Choices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param choice body dto.ChoiceWriteDTO true "Choice data"
// @Success 201 {object} dto.ChoiceDTO
// @Failure 400 {object} map[string][]string "Invalid input data or text question"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Question not found"
// @Router /questions/{id}/choices [post]
func (c *ChoiceController) CreateChoice(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChoiceWriteDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	choice, err := c.choiceService.CreateChoice(ctx.Request.Context(), questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, choice)
}

// GetChoice godoc
// @Summary (Admin) Get a choice
// @Tags Admin - Choices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param choice_id path int true "Choice ID"
// @Success 200 {object} dto.ChoiceDTO
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Choice not found"
// @Router /questions/{id}/choices/{choice_id} [get]
func (c *ChoiceController) GetChoice(ctx *gin.Context) {
	questionID, choiceID, ok := choicePath(ctx)
	if !ok {
		return
	}
	choice, err := c.choiceService.GetChoice(ctx.Request.Context(), questionID, choiceID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, choice)
}

// UpdateChoice godoc
// @Summary (Admin) Replace a choice
// @Tags Admin - Choices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param choice_id path int true "Choice ID"
// @Param choice body dto.ChoiceWriteDTO true "Choice data"
// @Success 200 {object} dto.ChoiceDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Choice not found"
// @Router /questions/{id}/choices/{choice_id} [put]
func (c *ChoiceController) UpdateChoice(ctx *gin.Context) {
	questionID, choiceID, ok := choicePath(ctx)
	if !ok {
		return
	}
	var req dto.ChoiceWriteDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	choice, err := c.choiceService.UpdateChoice(ctx.Request.Context(), questionID, choiceID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, choice)
}

// PatchChoice godoc
// @Summary (Admin) Partially update a choice
// @Tags Admin - Choices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param choice_id path int true "Choice ID"
// @Param choice body dto.ChoicePatchDTO true "Fields to change"
// @Success 200 {object} dto.ChoiceDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Choice not found"
// @Router /questions/{id}/choices/{choice_id} [patch]
func (c *ChoiceController) PatchChoice(ctx *gin.Context) {
	questionID, choiceID, ok := choicePath(ctx)
	if !ok {
		return
	}
	var req dto.ChoicePatchDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	choice, err := c.choiceService.PatchChoice(ctx.Request.Context(), questionID, choiceID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, choice)
}

// DeleteChoice godoc
// @Summary (Admin) Delete a choice
// @Description Removes the choice and unlinks it from every answer.
// @Tags Admin - Choices
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param choice_id path int true "Choice ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.DetailResponse "Not an administrator"
// @Failure 404 {object} dto.DetailResponse "Choice not found"
// @Router /questions/{id}/choices/{choice_id} [delete]
func (c *ChoiceController) DeleteChoice(ctx *gin.Context) {
	questionID, choiceID, ok := choicePath(ctx)
	if !ok {
		return
	}
	if err := c.choiceService.DeleteChoice(ctx.Request.Context(), questionID, choiceID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func choicePath(ctx *gin.Context) (questionID, choiceID uint, ok bool) {
	if questionID, ok = controller.ParseID(ctx, "id"); !ok {
		return 0, 0, false
	}
	if choiceID, ok = controller.ParseID(ctx, "choice_id"); !ok {
		return 0, 0, false
	}
	return questionID, choiceID, true
}
