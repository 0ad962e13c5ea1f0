package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/controller"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/service"
)

const notAuthenticated = "Authentication credentials were not provided."

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterDTO true "Credentials"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Router /auth/registration [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Returns a bearer token in "key".
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Credentials"
// @Success 200 {object} dto.TokenDTO
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 401 {object} dto.DetailResponse "Bad credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	token, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DetailResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), auth.PrincipalFrom(ctx)); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DetailResponse{Detail: "Successfully logged out."})
}

// CurrentUser godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.DetailResponse "Not authenticated"
// @Router /auth/user [get]
func (c *AuthController) CurrentUser(ctx *gin.Context) {
	p := auth.PrincipalFrom(ctx)
	if !p.Authenticated() {
		ctx.JSON(http.StatusUnauthorized, dto.DetailResponse{Detail: notAuthenticated})
		return
	}
	user, err := c.authService.CurrentUser(ctx.Request.Context(), p)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body dto.PasswordChangeDTO true "Old and new passwords"
// @Success 200 {object} dto.DetailResponse
// @Failure 400 {object} map[string][]string "Invalid input data"
// @Failure 401 {object} dto.DetailResponse "Not authenticated"
// @Router /auth/password/change [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	p := auth.PrincipalFrom(ctx)
	if !p.Authenticated() {
		ctx.JSON(http.StatusUnauthorized, dto.DetailResponse{Detail: notAuthenticated})
		return
	}
	var req dto.PasswordChangeDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	if err := c.authService.ChangePassword(ctx.Request.Context(), p, req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DetailResponse{Detail: "New password has been saved."})
}
