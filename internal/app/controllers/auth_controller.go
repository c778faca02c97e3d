package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
)

// AuthController handles authentication.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates an account and issues an access token
// @Summary Log in
// @Description Verifies credentials and returns a signed access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	resp, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(resp))
}
